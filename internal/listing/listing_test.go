package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeEntity struct {
	Name   string
	Email  string
	Active bool
}

func fakeFields(e fakeEntity) []string { return []string{e.Name, e.Email} }
func fakeActive(e fakeEntity) bool     { return e.Active }

var sample = []fakeEntity{
	{Name: "Acme Media", Email: "billing@acme.test", Active: true},
	{Name: "Borealis", Email: "hello@borealis.test", Active: false},
	{Name: "Cobalt Studio", Email: "ops@cobalt.test", Active: true},
	{Name: "acme north", Email: "north@acme.test", Active: false},
}

func TestFilterEmptyTermAllStatusReturnsInputUnchanged(t *testing.T) {
	got := Filter(sample, "", StatusAll, fakeFields, fakeActive)
	assert.Equal(t, sample, got)
}

func TestFilterTermIsCaseInsensitiveAcrossFields(t *testing.T) {
	got := Filter(sample, "ACME", StatusAll, fakeFields, fakeActive)
	assert.Len(t, got, 2)
	assert.Equal(t, "Acme Media", got[0].Name)
	assert.Equal(t, "acme north", got[1].Name)

	// Email field participates in the OR.
	got = Filter(sample, "ops@", StatusAll, fakeFields, fakeActive)
	assert.Len(t, got, 1)
	assert.Equal(t, "Cobalt Studio", got[0].Name)
}

func TestFilterStatusMatchesActiveFlagExactly(t *testing.T) {
	active := Filter(sample, "", StatusActive, fakeFields, fakeActive)
	assert.Len(t, active, 2)
	for _, e := range active {
		assert.True(t, e.Active)
	}

	inactive := Filter(sample, "", StatusInactive, fakeFields, fakeActive)
	assert.Len(t, inactive, 2)
	for _, e := range inactive {
		assert.False(t, e.Active)
	}
}

func TestFilterCombinesTermAndStatus(t *testing.T) {
	got := Filter(sample, "acme", StatusInactive, fakeFields, fakeActive)
	assert.Len(t, got, 1)
	assert.Equal(t, "acme north", got[0].Name)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	before := make([]fakeEntity, len(sample))
	copy(before, sample)
	_ = Filter(sample, "borealis", StatusAll, fakeFields, fakeActive)
	assert.Equal(t, before, sample)
}

func TestPaginateConcatenatingPagesReconstructsInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	first := Paginate(items, 1, 3)
	assert.Equal(t, 7, first.TotalItems)
	assert.Equal(t, 3, first.TotalPages)

	var rebuilt []int
	for page := 1; page <= first.TotalPages; page++ {
		rebuilt = append(rebuilt, Paginate(items, page, 3).Items...)
	}
	assert.Equal(t, items, rebuilt)
}

func TestPaginateExactMultiple(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	p := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.Equal(t, 2, p.TotalPages)
}

func TestPaginateOutOfRangePagesYieldEmptySlice(t *testing.T) {
	items := []int{1, 2, 3}

	p := Paginate(items, 0, 2)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)

	p = Paginate(items, 3, 2)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalItems)
}

func TestPaginateEmptyInput(t *testing.T) {
	p := Paginate([]int{}, 1, 10)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalItems)
	assert.Equal(t, 0, p.TotalPages)
}
