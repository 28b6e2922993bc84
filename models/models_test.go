package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	st, err := ParseServiceType("Construction")
	require.NoError(t, err)
	require.Equal(t, ServiceConstruction, st)

	_, err = ParseServiceType("construction")
	require.Error(t, err)

	_, err = ParseServiceType("")
	require.Error(t, err)
}

func TestParseTenderStatus(t *testing.T) {
	for _, s := range []string{"Created", "Published", "Closed"} {
		_, err := ParseTenderStatus(s)
		require.NoError(t, err)
	}
	_, err := ParseTenderStatus("Approved")
	require.Error(t, err)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("Rejected")
	require.NoError(t, err)
	require.Equal(t, DecisionRejected, d)

	_, err = ParseDecision("Declined")
	require.Error(t, err)
}

func TestBidStatusTerminal(t *testing.T) {
	require.False(t, BidCreated.Terminal())
	require.True(t, BidPublished.Terminal())
	require.True(t, BidCanceled.Terminal())
}
