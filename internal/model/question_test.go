package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionList(t *testing.T) {
	q := Question{Options: `["Dhaka","Chittagong","Sylhet","Khulna"]`}
	assert.Equal(t, []string{"Dhaka", "Chittagong", "Sylhet", "Khulna"}, q.OptionList())
}

func TestOptionList_EmptyAndMalformed(t *testing.T) {
	assert.Nil(t, (&Question{}).OptionList())
	assert.Nil(t, (&Question{Options: "not json"}).OptionList())
}
