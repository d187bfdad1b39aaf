package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID identificador de producto o transacción.
// Los respaldos antiguos guardaban ids numéricos (milisegundos desde epoch); al leer JSON se
// aceptan números y cadenas, al escribir siempre se emite cadena.
type ID string

// UnmarshalJSON acepta `"abc"`, `1700000000000` y `null`.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id inválido %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// DateLayout formato de fecha calendario usado en JSON y en filtros.
const DateLayout = "2006-01-02"

// Date fecha calendario sin hora. Las comparaciones son por día.
type Date struct {
	t time.Time
}

// NewDate construye la fecha a partir de año, mes y día.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf trunca t a su día calendario (en la zona de t).
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today devuelve la fecha local de hoy.
func Today() Date { return DateOf(time.Now()) }

// ParseDate interpreta "2006-01-02". La cadena vacía devuelve la fecha cero.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero indica si la fecha no fue informada.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time devuelve la medianoche UTC del día.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Before, After y Equal comparan por día.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// AddDays suma n días.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// AddMonths suma n meses calendario.
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// null u otro tipo: fecha vacía en lugar de fallar la carga completa
		*d = Date{}
		return nil
	}
	if len(s) > len(DateLayout) {
		// algunos respaldos guardan ISO-8601 completo
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			*d = DateOf(t)
			return nil
		}
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = parsed
	return nil
}
