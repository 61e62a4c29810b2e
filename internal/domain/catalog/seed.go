package catalog

import (
	"context"
	"fmt"
)

// SeedConditions returns the built-in walk-in clinic catalog.
func SeedConditions() []*Condition {
	return []*Condition{
		{Disease: "Acute Coronary Syndrome", Specialty: "Cardiology", RedFlag: true,
			Symptoms: []string{"Chest Pain", "Shortness of Breath", "Nausea/Vomiting", "Fatigue", "Palpitations"}},
		{Disease: "Pulmonary Embolism", Specialty: "Pulmonology", RedFlag: true,
			Symptoms: []string{"Chest Pain", "Shortness of Breath", "Dizziness", "Palpitations"}},
		{Disease: "Asthma Exacerbation", Specialty: "Pulmonology",
			Symptoms: []string{"Shortness of Breath", "Cough", "Chest Pain", "Fatigue"}},
		{Disease: "Community-Acquired Pneumonia", Specialty: "Pulmonology",
			Symptoms: []string{"Fever", "Cough", "Shortness of Breath", "Fatigue", "Chest Pain"}},
		{Disease: "Migraine", Specialty: "Neurology",
			Symptoms: []string{"Severe Headache", "Nausea/Vomiting", "Dizziness"}},
		{Disease: "Possible Stroke", Specialty: "Neurology", RedFlag: true,
			Symptoms: []string{"Severe Headache", "Dizziness", "Chest Pain"}},
		{Disease: "Gastroenteritis", Specialty: "Internal Medicine",
			Symptoms: []string{"Fever", "Nausea/Vomiting", "Abdominal Pain", "Fatigue"}},
		{Disease: "Acute Appendicitis", Specialty: "General Surgery", RedFlag: true,
			Symptoms: []string{"Abdominal Pain", "Fever", "Nausea/Vomiting"}},
		{Disease: "Upper Respiratory Tract Infection", Specialty: "Internal Medicine",
			Symptoms: []string{"Fever", "Cough", "Sore Throat", "Fatigue"}},
		{Disease: "Cardiac Arrhythmia", Specialty: "Cardiology", RedFlag: true,
			Symptoms: []string{"Palpitations", "Dizziness", "Chest Pain", "Shortness of Breath"}},
		{Disease: "Malaria", Specialty: "Internal Medicine", RedFlag: true,
			Symptoms: []string{"Fever", "Chills", "Sweating", "Headache", "Fatigue", "Nausea/Vomiting"}},
		{Disease: "Typhoid Fever", Specialty: "Internal Medicine", RedFlag: true,
			Symptoms: []string{"Fever", "Abdominal Pain", "Headache", "Fatigue", "Diarrhea", "Nausea/Vomiting"}},
		{Disease: "Cholera", Specialty: "Internal Medicine", RedFlag: true,
			Symptoms: []string{"Watery Diarrhea", "Vomiting", "Dehydration", "Abdominal Cramps", "Fatigue"}},
		{Disease: "Acute Infectious Diarrhea", Specialty: "Internal Medicine",
			Symptoms: []string{"Diarrhea", "Abdominal Pain", "Fever", "Nausea/Vomiting", "Dehydration"}},
		{Disease: "Dengue Fever", Specialty: "Internal Medicine", RedFlag: true,
			Symptoms: []string{"High Fever", "Severe Headache", "Muscle Pain", "Joint Pain", "Nausea/Vomiting", "Fatigue"}},
		{Disease: "Tuberculosis (Pulmonary)", Specialty: "Pulmonology", RedFlag: true,
			Symptoms: []string{"Cough", "Fever", "Weight Loss", "Night Sweats", "Chest Pain", "Fatigue"}},
	}
}

// SyncResult counts what a seed sync changed.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Sync upserts every seed condition. Conditions added by an administrator are
// left untouched.
func Sync(ctx context.Context, repo Repository) (SyncResult, error) {
	var res SyncResult
	for _, c := range SeedConditions() {
		c.Symptoms = NormalizeSymptoms(c.Symptoms)
		created, err := repo.Upsert(ctx, c)
		if err != nil {
			return res, fmt.Errorf("sync %q: %w", c.Disease, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}
