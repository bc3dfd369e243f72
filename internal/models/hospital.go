package models

type Hospital struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Address     string   `bson:"address" json:"address"`
	Phone       string   `bson:"phone" json:"phone"`
	Email       string   `bson:"email" json:"email"`
	Website     string   `bson:"website" json:"website"`
	Departments []string `bson:"departments" json:"departments"`
	Rating      float64  `bson:"rating" json:"rating"`
	Services    []string `bson:"services" json:"services"`
	About       string   `bson:"about" json:"about"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
}

func (h *Hospital) HasDepartment(dep string) bool {
	for _, d := range h.Departments {
		if d == dep {
			return true
		}
	}
	return false
}
