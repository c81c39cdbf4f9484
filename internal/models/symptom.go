package models

type Symptom struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// DefaultCatalogSymptoms is the catalog loaded by the seeding CLI. Names
// are unique and case-sensitive.
func DefaultCatalogSymptoms() []string {
	return []string{
		"Body aches",
		"Chest tightness",
		"Coughing",
		"Diarrhea",
		"Fatigue",
		"Fever",
		"Headache",
		"Hives",
		"Itchy eyes",
		"Itchy nose",
		"Lightheadedness",
		"Nausea",
		"Rash",
		"Runny nose",
		"Shortness of breath",
		"Sneezing",
		"Sore throat",
		"Stomach cramps",
		"Throat tightness",
		"Tongue swelling",
		"Vomiting",
		"Watery eyes",
		"Wheezing",
	}
}
