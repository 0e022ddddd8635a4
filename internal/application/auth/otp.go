package auth

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// OTPValidity ventana de validez del código de verificación.
const OTPValidity = 10 * time.Minute

var otpRange = big.NewInt(900000)

// GenerateOTP genera un código numérico de 6 dígitos (100000-999999) con
// crypto/rand. Los códigos no son globalmente únicos; se regeneran en cada
// emisión y solo vale el último persistido.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// OTPExpiration devuelve la expiración para un código recién emitido.
func OTPExpiration() time.Time {
	return time.Now().Add(OTPValidity)
}
