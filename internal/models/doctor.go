package models

type Doctor struct {
	ID         string   `bson:"_id" json:"_id"`
	Name       string   `bson:"name" json:"name"`
	Speciality string   `bson:"speciality" json:"speciality"`
	Degree     string   `bson:"degree,omitempty" json:"degree,omitempty"`
	Fee        float64  `bson:"fees" json:"fees"`
	About      string   `bson:"about" json:"about"`
	Image      string   `bson:"image" json:"image"`
	Experience string   `bson:"experience" json:"experience"`
	Rating     float64  `bson:"rating" json:"rating"`
	Languages  []string `bson:"languages" json:"languages"`
	HospitalID string   `bson:"hospitalId,omitempty" json:"hospitalId,omitempty"`
}
