package referral

type CreateReferralRequest struct {
	CandidateName  string  `json:"candidate_name" binding:"required,max=200"`
	CandidateEmail string  `json:"candidate_email" binding:"required,email"`
	Position       string  `json:"position" binding:"required,max=100"`
	Notes          *string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=submitted interviewing hired rejected"`
}

type ReferralResponse struct {
	ReferralID     string  `json:"referral_id"`
	ReferrerID     string  `json:"referrer_id"`
	ReferrerName   string  `json:"referrer_name,omitempty"`
	CandidateName  string  `json:"candidate_name"`
	CandidateEmail string  `json:"candidate_email"`
	Position       string  `json:"position"`
	Notes          *string `json:"notes,omitempty"`
	Status         string  `json:"status"`
}
