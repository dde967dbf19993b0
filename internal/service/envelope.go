package service

// Envelope is the success body of every data route.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`

	// Total is set on list routes, including when it is zero.
	Total *int `json:"total,omitempty"`

	// Query echoes the searched value on search routes.
	Query string `json:"query,omitempty"`
}

// Acknowledgement is the body of routes that return no data.
type Acknowledgement struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func list(data []any, total int) *Envelope {
	if data == nil {
		data = []any{}
	}
	return &Envelope{Success: true, Data: data, Total: &total}
}
