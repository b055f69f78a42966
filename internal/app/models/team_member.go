package models

type TeamMember struct {
	ID                  string `json:"id,omitempty" bson:"id,omitempty"`
	Name                string `json:"name" bson:"name"`
	Specialty           string `json:"specialty" bson:"specialty"`
	Role                string `json:"role,omitempty" bson:"role,omitempty"`
	IsPrimaryConsultant bool   `json:"isPrimaryConsultant" bson:"isPrimaryConsultant"`
}
