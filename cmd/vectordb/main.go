package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"

	"vectordb"
)

func formatVectors(vectors []vectordb.VectorRecord, w *os.File) {
	writer := tablewriter.NewWriter(w)
	writer.SetHeader([]string{"id", "position"})

	for _, v := range vectors {
		parts := make([]string, len(v.Position))
		for i, f := range v.Position {
			parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
		}
		writer.Append([]string{strconv.FormatUint(uint64(v.ID), 10), fmt.Sprint(parts)})
	}
	writer.Render()
}

func execute(db *vectordb.Db, line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}

	switch {
	case cmd.CreateCollection != nil:
		c := cmd.CreateCollection
		_, err := db.CreateCollection(c.ID, c.Dimensions)
		return err

	case cmd.Add != nil:
		a := cmd.Add
		collection, err := db.Collection(a.Collection)
		if err != nil {
			return err
		}
		position := make([]float32, len(a.Position))
		for i, f := range a.Position {
			position[i] = float32(f)
		}
		return collection.Add(vectordb.VectorRecord{ID: a.VectorID, Position: position})

	case cmd.Get != nil:
		collection, err := db.Collection(cmd.Get.Collection)
		if err != nil {
			return err
		}
		vectors, err := collection.All()
		if err != nil {
			return err
		}
		formatVectors(vectors, os.Stdout)
		return nil

	case cmd.Flush != nil:
		return db.Flush()

	case cmd.Close != nil:
		db.Close()
		os.Exit(0)
	}

	return fmt.Errorf("unhandled command")
}

func main() {
	path := flag.String("db", "vectors.db", "path to the database file")
	flag.Parse()

	db, err := vectordb.Open(*path)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}
	defer db.Close()

	rl, err := readline.New("vectordb> ")
	if err != nil {
		log.Fatal("failed to initialize readline:", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		if line == "" {
			continue
		}

		if err := execute(db, line); err != nil {
			fmt.Println("error:", err)
		}
	}
}
