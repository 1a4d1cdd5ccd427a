package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCopyMap(t *testing.T) {
	m1 := map[string]float64{"ACME": 1.5, "INIT": 2}
	m2 := CopyMap(m1)
	assert.Equal(t, m1, m2)
	// update
	m1["INIT"] = 4
	assert.NotEqual(t, m1, m2)

	fields := logrus.Fields{"service": "quote_syncer"}
	copied := CopyMap(fields)
	assert.Equal(t, fields, copied)

	var empty map[int]string
	assert.NotNil(t, CopyMap(empty))
}
