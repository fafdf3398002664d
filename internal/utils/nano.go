package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	NanoidSize = 32

	// Session tokens are longer than entity IDs since they act as bearer
	// credentials.
	TokenSize = 48

	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func NanoID() string {
	return NanoIDSize(NanoidSize)
}

func SessionToken() string {
	return NanoIDSize(TokenSize)
}

func NanoIDSize(size int) string {
	if size == 0 {
		size = NanoidSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
