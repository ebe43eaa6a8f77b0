package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"

	"github.com/OpenTraceLab/gatecount/pkg/synthlog"
)

// Message keys. English text doubles as the key.
const (
	msgSynthLog    = "Synthesis log: %s\n"
	msgLibrary     = "Cell library: %s\n"
	msgUsageHeader = "Cells used in the design:\n"
	msgUsageTotal  = "Total cell instances: %s\n"
	msgGates       = "EQUIVALENT GATE COUNT: %s\n"
	msgMaxFreq     = "MAXIMUM OPERATING FREQUENCY: %s %s\n"
	msgBreakdown   = "Gate equivalents per cell (reference %s):\n"
	msgAreasHeader = "Cell areas in %s (%s cells):\n"
	msgDropped     = "Cells declared without area: %s\n"
)

// Portuguese wording as used by the qflow course scripts.
var brazilian = map[string]string{
	msgSynthLog:             "Diretorio do synth.log: %s\n",
	msgLibrary:              "Biblioteca de celulas: %s\n",
	msgUsageHeader:          "Portas utilizadas no projeto:\n",
	msgUsageTotal:           "Total de portas instanciadas: %s\n",
	msgGates:                "NUMERO DE GATES EQUIVALENTES UTILIZADOS: %s\n",
	msgMaxFreq:              "FREQUENCIA MAXIMA DE OPERACAO: %s %s\n",
	msgBreakdown:            "Gates equivalentes por celula (referencia %s):\n",
	msgAreasHeader:          "Areas das celulas em %s (%s celulas):\n",
	msgDropped:              "Celulas declaradas sem area: %s\n",
	synthlog.FreqNotDefined: "NAO DEFINIDO",
	synthlog.FreqHelp:       `Digite: "qflow sta <nome_do_projeto>" para obter resultados de tempo`,
}

var messages = mustCatalog()

func mustCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range brazilian {
		if err := b.SetString(language.BrazilianPortuguese, key, msg); err != nil {
			panic(fmt.Sprintf("report: catalog entry %q: %v", key, err))
		}
	}
	return b
}

var portuguese, _ = language.Portuguese.Base()

// Language maps a user supplied tag ("pt-BR", "pt_BR.UTF-8", "en") to one of
// the supported report languages. An empty string selects English.
func Language(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.English, nil
	}
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("report: unknown language %q: %w", s, err)
	}
	if base, _ := tag.Base(); base == portuguese {
		return language.BrazilianPortuguese, nil
	}
	return language.English, nil
}
