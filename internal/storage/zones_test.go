package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandLettersMatchesGridAlphabet(t *testing.T) {
	assert.Equal(t, "CDEFGHJKLMNPQRSTUVWX", bandLetters)
	assert.Len(t, bandLetters, 20)
}

func TestBootstrapWorkerCountIsBounded(t *testing.T) {
	assert.Greater(t, bootstrapWorkers, 0)
	assert.LessOrEqual(t, bootstrapWorkers, 20)
}
