package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "cyrillic", in: "Властелин колец", want: "vlastelin-kolets"},
		{name: "multi letter transliteration", in: "Щука и Жук", want: "shchuka-i-zhuk"},
		{name: "soft and hard signs dropped", in: "Объявление", want: "obyavlenie"},
		{name: "yo", in: "Ёлка", want: "elka"},
		{name: "english with punctuation", in: "Hello, World!", want: "hello-world"},
		{name: "dash runs collapse", in: "Star  Wars -- Episode", want: "star-wars-episode"},
		{name: "surrounding spaces trimmed", in: "  Matrix  ", want: "matrix"},
		{name: "digits and underscore kept", in: "Blade_Runner 2049", want: "blade_runner-2049"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeSlug(tt.in))
		})
	}
}
