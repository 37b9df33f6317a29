package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyvalsToFields(t *testing.T) {
	fields := keyvalsToFields("entry", 1, "next", "soon")
	assert.Len(t, fields, 2)
	assert.Equal(t, "entry", fields[0].Key)
	assert.Equal(t, "next", fields[1].Key)

	// dangling key is ignored
	assert.Len(t, keyvalsToFields("entry", 1, "orphan"), 1)

	// non-string keys are skipped
	assert.Empty(t, keyvalsToFields(42, "value"))
}

func TestInitialize(t *testing.T) {
	err := Initialize(Config{Debug: true, Service: "test"})
	assert.NoError(t, err)
	assert.NotNil(t, Default())
	assert.NotNil(t, NewCronLogger())
}
