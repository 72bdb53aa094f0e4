package model

import "time"

// FormatoFecha is the business-date key layout (YYYY-MM-DD). Keys compare
// lexicographically in date order, which the range queries rely on.
const FormatoFecha = "2006-01-02"

// FechaClave returns the business-date key for an instant.
func FechaClave(t time.Time) string {
	return t.Format(FormatoFecha)
}

// FechaValida reports whether s is a well-formed business-date key.
func FechaValida(s string) bool {
	_, err := time.Parse(FormatoFecha, s)
	return err == nil
}

var mesesCortos = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// FechaVisible formats a date key as "2 ene" for report narratives. Falls
// back to the raw key when it does not parse.
func FechaVisible(fecha string) string {
	t, err := time.Parse(FormatoFecha, fecha)
	if err != nil {
		return fecha
	}
	return t.Format("2") + " " + mesesCortos[t.Month()-1]
}
