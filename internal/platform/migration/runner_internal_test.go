// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/kinoteka":   "pgx5://u:p@db:5432/kinoteka",
		"postgresql://u:p@db:5432/kinoteka": "pgx5://u:p@db:5432/kinoteka",
		"pgx5://u:p@db:5432/kinoteka":       "pgx5://u:p@db:5432/kinoteka",
	}

	for input, want := range tests {
		assert.Equal(t, want, convertToPgx5DSN(input), input)
	}
}
