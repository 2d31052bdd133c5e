package domain

import "testing"

func TestComputeSpamScore(t *testing.T) {
	tests := []struct {
		name    string
		message string
		subject string
		email   string
		score   int
		isSpam  bool
	}{
		{
			name:    "clean submission",
			message: "We would like a quote for a new company website.",
			subject: "Website inquiry",
			email:   "jane@acme.com",
			score:   0,
		},
		{
			name:    "short message alone stays under threshold",
			message: "hi",
			subject: "hello",
			email:   "someone@example.com",
			score:   20,
		},
		{
			name:    "trigger word in subject and test domain",
			message: "please check my offer, it is a great deal",
			subject: "cheap viagra",
			email:   "bot@test.com",
			score:   80,
			isSpam:  true,
		},
		{
			name:    "all rules fire, score uncapped",
			message: "viagra",
			subject: "viagra",
			email:   "x@test.com",
			score:   150,
			isSpam:  true,
		},
		{
			name:    "trigger word in message plus test domain",
			message: "buy viagra now, limited time offer available",
			subject: "special offer",
			email:   "seller@test.com",
			score:   80,
			isSpam:  true,
		},
		{
			name:    "trigger word is case insensitive",
			message: "interested in your services, thanks",
			subject: "VIAGRA for sale",
			email:   "shop@store.com",
			score:   50,
		},
		{
			name:    "empty message scores no short-message points",
			message: "",
			subject: "hello",
			email:   "a@b.com",
			score:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, isSpam := ComputeSpamScore(tc.message, tc.subject, tc.email)
			if score != tc.score {
				t.Errorf("score = %d, want %d", score, tc.score)
			}
			if isSpam != tc.isSpam {
				t.Errorf("isSpam = %v, want %v", isSpam, tc.isSpam)
			}
		})
	}
}

func TestComputeSpamScoreThresholdBoundary(t *testing.T) {
	// 70 points exactly must not flip the flag; the rule is strictly greater.
	score, isSpam := ComputeSpamScore("hi!", "viagra", "friend@company.com")
	if score != 70 {
		t.Fatalf("score = %d, want 70", score)
	}
	if isSpam {
		t.Fatal("score of exactly 70 must not be flagged as spam")
	}
}

func TestApplySpamScoreOverwritesStoredValues(t *testing.T) {
	c := &Contact{
		Message:   "viagra",
		Subject:   "viagra",
		Email:     "x@test.com",
		SpamScore: 5,
	}
	c.ApplySpamScore()
	if c.SpamScore != 150 || !c.IsSpam {
		t.Fatalf("got score=%d isSpam=%v, want 150/true", c.SpamScore, c.IsSpam)
	}

	c.Message = "a perfectly reasonable project description"
	c.Subject = "project"
	c.Email = "client@corp.com"
	c.ApplySpamScore()
	if c.SpamScore != 0 || c.IsSpam {
		t.Fatalf("got score=%d isSpam=%v after cleanup, want 0/false", c.SpamScore, c.IsSpam)
	}
}

func TestContactStatusValid(t *testing.T) {
	for _, s := range []ContactStatus{
		ContactStatusNew, ContactStatusRead, ContactStatusInProgress,
		ContactStatusResponded, ContactStatusClosed, ContactStatusSpam,
	} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if ContactStatus("archived").Valid() {
		t.Error("unknown status must be invalid")
	}
}

func TestPriorityValid(t *testing.T) {
	if !PriorityUrgent.Valid() || Priority("critical").Valid() {
		t.Error("priority validation mismatch")
	}
}
