package domain

import (
	"bytes"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// Amount é um valor monetário tolerante na entrada: nulo, ausente, texto não
// numérico, NaN ou infinito viram zero.
type Amount float64

// Float retorna o valor como float64, já saneado
func (a Amount) Float() float64 {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// UnmarshalJSON aceita números, strings numéricas e null
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*a = 0
		return nil
	}

	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(string(raw))
		if err != nil {
			*a = 0
			return nil
		}
		raw = []byte(unquoted)
	}

	value, err := cast.ToFloat64E(string(bytes.TrimSpace(raw)))
	if err != nil {
		*a = 0
		return nil
	}

	*a = Amount(Amount(value).Float())
	return nil
}
