package entity

import (
	"strings"
	"time"
)

// Prefijos de códigos de documento.
const (
	OrderCodePrefix = "PED"
	ActCodePrefix   = "ACT"
)

// DocumentCode arma códigos del tipo PED-20260915-A1B2C3: prefijo, fecha (UTC) y sufijo de 6 caracteres.
func DocumentCode(prefix string, at time.Time, suffix string) string {
	suffix = strings.ToUpper(suffix)
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return prefix + "-" + at.UTC().Format("20060102") + "-" + suffix
}
