package kernel

import "github.com/google/uuid"

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func GenerateCandidateID() CandidateID     { return CandidateID(uuid.NewString()) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type RecruiterID string

func NewRecruiterID(id string) RecruiterID { return RecruiterID(id) }
func GenerateRecruiterID() RecruiterID     { return RecruiterID(uuid.NewString()) }
func (r RecruiterID) String() string       { return string(r) }
func (r RecruiterID) IsEmpty() bool        { return string(r) == "" }
