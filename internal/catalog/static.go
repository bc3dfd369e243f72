package catalog

import "github.com/harentsoaR/hyno-health-api/internal/models"

// Bundled reference data served when the live source is unavailable or
// empty, and copied into it on the first admin edit.
var staticDoctors = []models.Doctor{
	{ID: "doc1", Name: "Dr. Richard James", Speciality: "General physician", Degree: "MBBS", Fee: 500, Experience: "4 Years", Rating: 4.6, Languages: []string{"English", "Hindi"}, Image: "/doc1.png", HospitalID: "h1",
		About: "Dr. James has a strong commitment to delivering comprehensive medical care, focusing on preventive medicine, early diagnosis, and effective treatment strategies."},
	{ID: "doc2", Name: "Dr. Emily Larson", Speciality: "Gynecologist", Degree: "MBBS", Fee: 600, Experience: "3 Years", Rating: 4.7, Languages: []string{"English"}, Image: "/doc2.png", HospitalID: "h7",
		About: "Dr. Larson focuses on women's health across every stage of life, from adolescent care to menopause management."},
	{ID: "doc3", Name: "Dr. Sarah Patel", Speciality: "Dermatologist", Degree: "MBBS", Fee: 300, Experience: "1 Years", Rating: 4.4, Languages: []string{"English", "Gujarati", "Hindi"}, Image: "/doc3.png", HospitalID: "h2",
		About: "Dr. Patel treats skin, hair and nail conditions with an emphasis on evidence-based treatment plans."},
	{ID: "doc4", Name: "Dr. Christopher Lee", Speciality: "Pediatricians", Degree: "MBBS", Fee: 400, Experience: "2 Years", Rating: 4.8, Languages: []string{"English", "Tamil"}, Image: "/doc4.png", HospitalID: "h6",
		About: "Dr. Lee provides preventive and acute care for infants, children and adolescents."},
	{ID: "doc5", Name: "Dr. Jennifer Garcia", Speciality: "Neurologist", Degree: "MBBS", Fee: 700, Experience: "4 Years", Rating: 4.5, Languages: []string{"English", "Spanish"}, Image: "/doc5.png", HospitalID: "h4",
		About: "Dr. Garcia diagnoses and manages disorders of the brain, spinal cord and nerves."},
	{ID: "doc6", Name: "Dr. Andrew Williams", Speciality: "Neurologist", Degree: "MBBS", Fee: 650, Experience: "4 Years", Rating: 4.3, Languages: []string{"English"}, Image: "/doc6.png", HospitalID: "h8",
		About: "Dr. Williams specialises in headache disorders, epilepsy and movement disorders."},
	{ID: "doc7", Name: "Dr. Ananya Rao", Speciality: "Gastroenterologist", Degree: "MD", Fee: 800, Experience: "6 Years", Rating: 4.9, Languages: []string{"English", "Kannada", "Telugu"}, Image: "/doc7.png", HospitalID: "h5",
		About: "Dr. Rao treats digestive system conditions and performs diagnostic endoscopy."},
	{ID: "doc8", Name: "Dr. Vikram Mehta", Speciality: "General physician", Degree: "MD", Fee: 450, Experience: "8 Years", Rating: 4.6, Languages: []string{"English", "Hindi", "Marathi"}, Image: "/doc8.png",
		About: "Dr. Mehta runs a family practice focused on chronic disease management and routine check-ups."},
}

var staticHospitals = []models.Hospital{
	{ID: "h1", Name: "Apollo Hospitals, Chennai", Address: "21 Greams Lane, Off Greams Road, Chennai, Tamil Nadu 600006", Phone: "+91-44-2829-3333", Email: "info@apollohospitals.com", Website: "https://www.apollohospitals.com",
		Departments: []string{"Cardiology", "Orthopedics", "Neurology", "Oncology", "Emergency"}, Rating: 4.8,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Surgery"},
		About:    "Leading multispeciality hospital known for pioneering treatments in cardiology and oncology."},
	{ID: "h2", Name: "Max Super Speciality Hospital, Delhi", Address: "FC-50, C & D Block, Shalimar Bagh, Delhi 110088", Phone: "+91-11-6642-2222", Email: "info@maxhealthcare.com", Website: "https://www.maxhealthcare.in",
		Departments: []string{"Pediatrics", "Dermatology", "ENT", "Cardiology", "Gynecology"}, Rating: 4.6,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Maternity"},
		About:    "Network of super-speciality hospitals with NABH and JCI accreditations."},
	{ID: "h3", Name: "Fortis Hospital, Mumbai", Address: "Mulund Goregaon Link Road, Mulund (West), Mumbai, Maharashtra 400078", Phone: "+91-22-4365-4365", Email: "info@fortishealthcare.com", Website: "https://www.fortishealthcare.com",
		Departments: []string{"General Surgery", "Gynecology", "Urology", "Orthopedics", "Neurology"}, Rating: 4.7,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Cancer Care"},
		About:    "Known for advanced surgical procedures and comprehensive care."},
	{ID: "h4", Name: "AIIMS, New Delhi", Address: "Ansari Nagar, New Delhi 110029", Phone: "+91-11-2658-8500", Email: "info@aiims.edu", Website: "https://www.aiims.edu",
		Departments: []string{"Cardiology", "Pulmonology", "Oncology", "Neurology", "Pediatrics"}, Rating: 4.9,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Research"},
		About:    "Premier medical institution providing medical education, research and patient care."},
	{ID: "h5", Name: "Manipal Hospital, Bangalore", Address: "98, HAL Airport Road, Bangalore, Karnataka 560017", Phone: "+91-80-2502-4444", Email: "info@manipalhospitals.com", Website: "https://www.manipalhospitals.com",
		Departments: []string{"Orthopedics", "ENT", "Dermatology", "Cardiology", "Gynecology"}, Rating: 4.5,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Telemedicine"},
		About:    "Healthcare network focused on innovation and patient-centric care."},
	{ID: "h6", Name: "Rainbow Children's Hospital, Hyderabad", Address: "22, Rd Number 10, Banjara Hills, Hyderabad, Telangana 500034", Phone: "+91-40-2339-9999", Email: "info@rainbowhospitals.in", Website: "https://www.rainbowhospitals.in",
		Departments: []string{"Pediatrics", "General Surgery", "Neonatology"}, Rating: 4.8,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Child Care"},
		About:    "Dedicated to pediatric and neonatal care."},
	{ID: "h7", Name: "Kokilaben Dhirubhai Ambani Hospital, Mumbai", Address: "Rao Saheb Acharya Rd, Four Bungalows, Andheri West, Mumbai, Maharashtra 400053", Phone: "+91-22-3099-9999", Email: "info@kokilabenhospital.com", Website: "https://www.kokilabenhospital.com",
		Departments: []string{"Gynecology", "Obstetrics", "Cardiology", "Oncology"}, Rating: 4.7,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Maternity"},
		About:    "Modern tertiary care hospital offering advanced medical treatments."},
	{ID: "h8", Name: "Medanta - The Medicity, Gurgaon", Address: "CH Baktawar Singh Rd, Sector 38, Gurugram, Haryana 122001", Phone: "+91-124-414-1414", Email: "info@medanta.org", Website: "https://www.medanta.org",
		Departments: []string{"Urology", "Cardiology", "Neurology", "Oncology", "Orthopedics"}, Rating: 4.6,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Robotic Surgery"},
		About:    "Multi-super speciality institute known for advanced medical technology."},
	{ID: "h9", Name: "Narayana Health, Bangalore", Address: "258/A, Bommasandra Industrial Area, Hosur Road, Bangalore, Karnataka 560099", Phone: "+91-80-7122-2222", Email: "info@narayanahealth.org", Website: "https://www.narayanahealth.org",
		Departments: []string{"General Surgery", "Orthopedics", "ENT", "Cardiology"}, Rating: 4.5,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "Affordable Care"},
		About:    "Hospital network committed to quality healthcare at affordable prices."},
	{ID: "h10", Name: "Columbia Asia Hospital, Pune", Address: "22, 2A, Mundhwa - Kharadi Rd, Kharadi, Pune, Maharashtra 411014", Phone: "+91-20-6165-6666", Email: "info@columbiaasia.com", Website: "https://www.columbiaasia.com",
		Departments: []string{"Dermatology", "Pulmonology", "Oncology", "Gynecology"}, Rating: 4.4,
		Services: []string{"24/7 Emergency", "Ambulance", "Pharmacy", "Lab Tests", "International Standards"},
		About:    "International standard healthcare services with a focus on patient safety."},
}

// StaticDoctors returns a copy of the bundled doctor list.
func StaticDoctors() []models.Doctor {
	out := make([]models.Doctor, len(staticDoctors))
	copy(out, staticDoctors)
	return out
}

// StaticHospitals returns a copy of the bundled hospital list.
func StaticHospitals() []models.Hospital {
	out := make([]models.Hospital, len(staticHospitals))
	copy(out, staticHospitals)
	return out
}
