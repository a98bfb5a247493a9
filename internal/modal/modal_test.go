package modal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecognizedCombination(t *testing.T) {
	q := url.Values{"modal": {"edit-client"}, "id": {"abc123"}}
	s := Parse(q)
	assert.True(t, s.Open)
	assert.Equal(t, EntityClient, s.Entity)
	assert.Equal(t, ModeEdit, s.Mode)
	assert.Equal(t, "abc123", s.ID)
}

func TestParseHyphenatedEntityTag(t *testing.T) {
	q := url.Values{"modal": {"create-job-type"}}
	s := Parse(q)
	assert.True(t, s.Open)
	assert.Equal(t, EntityJobType, s.Entity)
	assert.Equal(t, ModeCreate, s.Mode)
	assert.Empty(t, s.ID)
}

func TestParseUnrecognizedCombinationsYieldClosed(t *testing.T) {
	cases := []string{
		"edit-unicorn",
		"destroy-client",
		"client",
		"-",
		"edit-",
		"-client",
	}
	for _, raw := range cases {
		s := Parse(url.Values{"modal": {raw}, "id": {"x"}})
		assert.Equal(t, Closed, s, "modal=%q should parse to closed", raw)
	}
}

func TestParseMissingParamIsClosed(t *testing.T) {
	assert.Equal(t, Closed, Parse(url.Values{}))
	assert.Equal(t, Closed, Parse(url.Values{"id": {"orphan"}}))
}

func TestOpenRejectsInvalidInput(t *testing.T) {
	assert.Equal(t, Closed, Open("unicorn", ModeEdit, "x"))
	assert.Equal(t, Closed, Open(EntityClient, "destroy", "x"))
}

func TestApplyThenParseRoundTrips(t *testing.T) {
	s := Open(EntityProvider, ModeView, "p-42")
	q := s.Apply(url.Values{"tab": {"billing"}})

	assert.Equal(t, "view-provider", q.Get("modal"))
	assert.Equal(t, "p-42", q.Get("id"))
	assert.Equal(t, "billing", q.Get("tab"), "unrelated params survive")
	assert.Equal(t, s, Parse(q))
}

func TestApplyWithoutIDDropsStaleID(t *testing.T) {
	q := url.Values{"modal": {"edit-client"}, "id": {"old"}}
	q = Open(EntityCompany, ModeCreate, "").Apply(q)

	assert.Equal(t, "create-company", q.Get("modal"))
	assert.Empty(t, q.Get("id"))
}

func TestOpenThenClearLeavesNoModalParams(t *testing.T) {
	q := Open(EntityClient, ModeEdit, "abc123").Apply(url.Values{})
	q = Clear(q)

	assert.Empty(t, q.Get("modal"))
	assert.Empty(t, q.Get("id"))
	assert.Equal(t, Closed, Parse(q))

	// A fresh open after clearing produces an independent, parseable state.
	q = Open(EntityCampaign, ModeCreate, "").Apply(q)
	s := Parse(q)
	assert.True(t, s.Open)
	assert.Equal(t, EntityCampaign, s.Entity)
	assert.Equal(t, ModeCreate, s.Mode)
}

func TestApplyAndClearDoNotMutateInput(t *testing.T) {
	orig := url.Values{"modal": {"edit-client"}, "id": {"abc"}, "tab": {"x"}}
	_ = Clear(orig)
	_ = Open(EntityJob, ModeView, "j1").Apply(orig)

	assert.Equal(t, "edit-client", orig.Get("modal"))
	assert.Equal(t, "abc", orig.Get("id"))
}
