package authorization

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"brickgate/internal/domain"
)

// ResolverSuite tests the authorization state machine.
//
// Justification: Resolve is a pure function whose five outputs must partition
// the input space; every gating surface depends on it being total and
// deterministic.
type ResolverSuite struct {
	suite.Suite
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) TestNoRequestIgnoresOtherFlags() {
	// exists=false wins regardless of stale approval or whitelist flags.
	for _, snap := range []domain.RegistrySnapshot{
		{},
		{Approved: true},
		{Rejected: true},
		{Approved: true, Rejected: true, Verified: true},
	} {
		s.Equal(NoRequest, Resolve(snap))
	}
}

func (s *ResolverSuite) TestRejectedWinsOverTransientApproved() {
	snap := domain.RegistrySnapshot{RequestExists: true, Approved: true, Rejected: true, Verified: true}
	s.Equal(Rejected, Resolve(snap))
}

func (s *ResolverSuite) TestStateTable() {
	cases := []struct {
		name string
		snap domain.RegistrySnapshot
		want State
	}{
		{"pending", domain.RegistrySnapshot{RequestExists: true}, Pending},
		{"pending ignores whitelist flag", domain.RegistrySnapshot{RequestExists: true, Verified: true}, Pending},
		{"rejected", domain.RegistrySnapshot{RequestExists: true, Rejected: true}, Rejected},
		{"approved frozen", domain.RegistrySnapshot{RequestExists: true, Approved: true}, ApprovedFrozen},
		{"approved verified", domain.RegistrySnapshot{RequestExists: true, Approved: true, Verified: true}, ApprovedVerified},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Equal(tc.want, Resolve(tc.snap))
		})
	}
}

func (s *ResolverSuite) TestTotality() {
	// Exhaustive over the four boolean flags: exactly one state per input.
	known := map[State]bool{
		NoRequest: true, Pending: true, Rejected: true,
		ApprovedFrozen: true, ApprovedVerified: true,
	}
	for i := 0; i < 16; i++ {
		snap := domain.RegistrySnapshot{
			RequestExists: i&1 != 0,
			Approved:      i&2 != 0,
			Rejected:      i&4 != 0,
			Verified:      i&8 != 0,
		}
		state := Resolve(snap)
		s.True(known[state], "unknown state %q for input %+v", state, snap)
		// Determinism: same input, same output.
		s.Equal(state, Resolve(snap))
	}
}

func (s *ResolverSuite) TestSeverityMapping() {
	s.Equal(SeverityOK, SeverityOf(ApprovedVerified))
	s.Equal(SeverityDanger, SeverityOf(Rejected))
	for _, st := range []State{NoRequest, Pending, ApprovedFrozen} {
		s.Equal(SeverityWarn, SeverityOf(st))
	}
}

func (s *ResolverSuite) TestEveryStateHasAMessage() {
	for _, st := range []State{NoRequest, Pending, Rejected, ApprovedFrozen, ApprovedVerified} {
		s.NotEmpty(MessageOf(st))
	}
}
