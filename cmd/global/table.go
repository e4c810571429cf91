package global

import (
	"bytes"

	"github.com/markusressel/base2go/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// TableConfig is the style used for all tables printed to the console
func TableConfig() *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           !NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}

func PrintTable(tab table.Table) error {
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, TableConfig()); err != nil {
		return err
	}
	ui.Printfln(buf.String())
	return nil
}
