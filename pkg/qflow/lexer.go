package qflow

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer tokenizes the csh-style variable scripts qflow writes
// (qflow_vars.sh, project_vars.sh). Only "set name=value" is meaningful;
// everything else is carried as opaque words.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments - shell style (# to end of line)
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Quoted values
	{Name: "String", Pattern: `"[^"\n]*"|'[^'\n]*'`},

	// Newlines terminate a statement
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r\f\v]+`},

	// "set" but not "setenv"
	{Name: "KwSet", Pattern: `set\b`},
	{Name: "Assign", Pattern: `=`},

	// Paths, variable names, anything else
	{Name: "Word", Pattern: `[^\s=#"']+`},

	// Unbalanced quotes (e.g. "don't" inside an echo)
	{Name: "Stray", Pattern: `["']`},
})
