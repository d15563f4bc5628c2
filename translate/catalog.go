package translate

import (
	"log"

	"golang.org/x/text/language"
)

// German messages for run time errors.
var _german = map[string]string{
	"tape empty":                                    "Band leer",
	"history empty":                                 "Verlauf leer",
	"instruction not found":                         "Anweisung nicht gefunden",
	"instruction not found (state: %v, symbol: %c)": "Anweisung nicht gefunden (Zustand: %v, Symbol: %c)",
	"step limit reached":                            "Schrittgrenze erreicht",
	"no program loaded":                             "kein Programm geladen",
	"unknown preset":                                "unbekannte Vorlage",
	"step %d %v":                                    "Schritt %d %v",
	"start state missing":                           "Startzustand fehlt",
	"head outside tape":                             "Kopf außerhalb des Bandes",
	"no halting instruction":                        "keine Halteanweisung",
	"start state has no instructions":               "Startzustand hat keine Anweisungen",
}

func init() {
	for key, msg := range _german {
		err := Register(language.German, key, msg)
		if err != nil {
			log.Printf("translate: %v: %v", key, err)
		}
	}
}
