package validate

// Схемы тел запросов по сущностям. MaxLen совпадает с VARCHAR колонок.
var (
	CandidateCreate = Schema{
		{Name: "first_name", Kind: KindString, MaxLen: 30},
		{Name: "last_name", Kind: KindString, MaxLen: 30},
		{Name: "industry_connected", Kind: KindBool},
		{Name: "party_id", Kind: KindInt, Optional: true},
	}

	// CandidateUpdate — смена партии кандидата.
	CandidateUpdate = Schema{
		{Name: "party_id", Kind: KindInt},
	}

	PartyCreate = Schema{
		{Name: "name", Kind: KindString, MaxLen: 50},
		{Name: "description", Kind: KindString, Optional: true},
	}

	PartyUpdate = Schema{
		{Name: "name", Kind: KindString, MaxLen: 50},
		{Name: "description", Kind: KindString, Optional: true},
	}

	VoterCreate = Schema{
		{Name: "first_name", Kind: KindString, MaxLen: 30},
		{Name: "last_name", Kind: KindString, MaxLen: 30},
		{Name: "email", Kind: KindString, MaxLen: 50},
	}

	// VoterUpdate — смена email избирателя.
	VoterUpdate = Schema{
		{Name: "email", Kind: KindString, MaxLen: 50},
	}

	VoteCreate = Schema{
		{Name: "voter_id", Kind: KindInt},
		{Name: "candidate_id", Kind: KindInt},
	}

	// VoteUpdate — перенос голоса на другого кандидата.
	VoteUpdate = Schema{
		{Name: "candidate_id", Kind: KindInt},
	}
)
