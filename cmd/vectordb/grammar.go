package main

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var commandLexer = lexer.MustSimple([]lexer.Rule{
	{Name: `Ident`, Pattern: `[a-zA-Z][a-zA-Z_\d-]*`},
	{Name: `Float`, Pattern: `-?\d+\.\d+`},
	{Name: `Int`, Pattern: `\d+`},
	{Name: `Punct`, Pattern: `[,()]`},
	{Name: "comment", Pattern: `[#;][^\n]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

type CreateCollection struct {
	ID         uint32 `"create-collection" @Int`
	Dimensions uint32 `@Int`
}

type Add struct {
	Collection uint32    `"add" @Int`
	VectorID   uint32    `@Int`
	Position   []float64 `"(" (@Float | @Int) ("," (@Float | @Int))* ")"`
}

type Get struct {
	Collection uint32 `"get" @Int`
}

type Flush struct {
	_ bool `"flush"`
}

type Close struct {
	_ bool `"close"`
}

type Command struct {
	CreateCollection *CreateCollection `@@`
	Add              *Add              `| @@`
	Get              *Get              `| @@`
	Flush            *Flush            `| @@`
	Close            *Close            `| @@`
}

var commandParser = participle.MustBuild(&Command{},
	participle.Lexer(commandLexer),
)

func ParseCommand(line string) (*Command, error) {
	cmd := &Command{}
	if err := commandParser.ParseString("", line, cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}
