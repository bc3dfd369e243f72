package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	SubjectDoctor   = "doctor"
	SubjectHospital = "hospital"
)

type PatientDetails struct {
	Name       string `bson:"name" json:"name"`
	Age        int    `bson:"age" json:"age"`
	Contact    string `bson:"contact" json:"contact"`
	Email      string `bson:"email" json:"email"`
	Reason     string `bson:"reason" json:"reason"`
	Department string `bson:"department,omitempty" json:"department,omitempty"`
}

type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"userId" json:"userId"`
	Type            string             `bson:"type" json:"type"`
	DoctorID        string             `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	HospitalID      string             `bson:"hospitalId,omitempty" json:"hospitalId,omitempty"`
	SubjectName     string             `bson:"subjectName" json:"subjectName"`
	Date            string             `bson:"date" json:"date"`
	Time            string             `bson:"time" json:"time"`
	AppointmentDate time.Time          `bson:"appointmentDate" json:"appointmentDate"`
	Patient         PatientDetails     `bson:"patient" json:"patient"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Amount          float64            `bson:"amount" json:"amount"`
	Paid            bool               `bson:"paid" json:"paid"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	CancelledAt     *time.Time         `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
}

// SubjectID is the doctor id for doctor bookings and the hospital id otherwise.
func (a *Appointment) SubjectID() string {
	if a.Type == SubjectDoctor {
		return a.DoctorID
	}
	return a.HospitalID
}
