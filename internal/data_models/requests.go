package dto

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateGigRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=2000"`
	Budget      float64 `json:"budget" validate:"gte=0"`
}

type UpdateGigRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=2000"`
	Budget      float64 `json:"budget" validate:"gte=0"`
}

type CreateBidRequest struct {
	GigID         string  `json:"gig_id" validate:"required,uuid4"`
	Message       string  `json:"message" validate:"required,max=1000"`
	ProposedPrice float64 `json:"proposed_price" validate:"gte=0"`
}

type UpdateBidRequest struct {
	Message       string  `json:"message" validate:"required,max=1000"`
	ProposedPrice float64 `json:"proposed_price" validate:"gte=0"`
}
