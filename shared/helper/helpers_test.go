package helper_test

import (
	"testing"

	"github.com/on-the-ground/trackmemo/shared/helper"
	"github.com/stretchr/testify/assert"
)

func TestAsOr(t *testing.T) {
	assert.Equal(t, 3, helper.AsOr[int](3, 7))
	assert.Equal(t, 7, helper.AsOr[int]("3", 7))
	assert.Equal(t, 7, helper.AsOr[int](nil, 7))
}

func TestMustAs(t *testing.T) {
	assert.Equal(t, "x", helper.MustAs[string]("x"))
	assert.Nil(t, helper.MustAs[error](nil))
	assert.Panics(t, func() { helper.MustAs[int]("x") })
}
