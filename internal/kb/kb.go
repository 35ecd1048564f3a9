// Package kb holds the static knowledge base about Kolhapur Municipal
// Corporation services. It is an opaque read-only lookup table keyed by
// category and optional subcategory, queried by the free-text retrieval
// tool. Content is illustrative where marked; it is never mutated at
// runtime.
package kb

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCategory is returned when a lookup names a category that does
// not exist in the knowledge base.
var ErrUnknownCategory = errors.New("unknown knowledge base category")

// Contact is a named phone contact for a department or helpline.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Hours string `json:"hours,omitempty"`
}

// Shelter is a designated flood relief shelter.
type Shelter struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

// Facts is the structured payload returned for a category or subcategory.
type Facts struct {
	Description string            `json:"description"`
	Steps       []string          `json:"steps,omitempty"`
	Documents   []string          `json:"documents,omitempty"`
	Contacts    []Contact         `json:"contacts,omitempty"`
	PortalURL   string            `json:"portal_url,omitempty"`
	Shelters    []Shelter         `json:"shelters,omitempty"`
	Figures     map[string]string `json:"figures,omitempty"`
}

// CitizenPortalURL is the KMC online services portal.
const CitizenPortalURL = "https://web.kolhapurcorporation.gov.in/citizen"

// facts maps category -> subcategory -> payload. The "" subcategory is the
// category overview.
var facts = map[string]map[string]Facts{
	"property_tax": {
		"": {
			Description: "Property tax assessment and payment for properties within Kolhapur Municipal Corporation limits. Bills are issued annually; early payment rebates apply before 30 June.",
			Steps: []string{
				"Visit the citizen portal and choose Property Tax",
				"Enter your property number (found on the previous bill)",
				"Verify owner name and outstanding amount",
				"Pay online via UPI, card or net banking, or at any ward office",
				"Download the receipt for your records",
			},
			Documents: []string{"Property number", "Previous tax receipt (for reference)"},
			PortalURL: CitizenPortalURL,
			Contacts:  []Contact{{Name: "Property Tax Department", Phone: "0231-2540291", Hours: "10:00-17:45 Mon-Sat"}},
		},
	},
	"water": {
		"": {
			Description: "Water supply billing, new connections and meter complaints for KMC water consumers.",
			Steps: []string{
				"Find your consumer number on the water bill",
				"Pay online at the citizen portal or at the water works office",
				"For new connections, apply at the ward office with the documents listed",
			},
			Documents: []string{"Consumer number", "Property ownership proof (new connections)", "Identity proof"},
			PortalURL: CitizenPortalURL,
			Contacts:  []Contact{{Name: "Water Works Department", Phone: "0231-2540292", Hours: "10:00-17:45 Mon-Sat"}},
		},
	},
	"birth_certificate": {
		"": {
			Description: "Birth certificates for births registered within KMC limits. Registration within 21 days of birth is free.",
			Steps: []string{
				"Apply at the citizen portal or the health department counter",
				"Provide hospital discharge summary or birth report",
				"Pay the certificate fee",
				"Collect the certificate in 3 working days or download it online",
			},
			Documents: []string{"Hospital birth report", "Parents' identity proof", "Address proof"},
			PortalURL: CitizenPortalURL,
			Contacts:  []Contact{{Name: "Health Department (Registrar)", Phone: "0231-2540293"}},
		},
	},
	"death_certificate": {
		"": {
			Description: "Death certificates for deaths registered within KMC limits.",
			Steps: []string{
				"Apply at the citizen portal or the health department counter",
				"Provide the hospital or cremation ground report",
				"Pay the certificate fee",
				"Collect the certificate in 3 working days or download it online",
			},
			Documents: []string{"Hospital/cremation report", "Applicant identity proof", "Relation proof"},
			PortalURL: CitizenPortalURL,
			Contacts:  []Contact{{Name: "Health Department (Registrar)", Phone: "0231-2540293"}},
		},
	},
	"trade_license": {
		"": {
			Description: "Trade licenses for shops and establishments operating within KMC limits. Renewal is due every financial year.",
			Steps: []string{
				"Apply at the citizen portal under Trade License",
				"Upload shop act registration and premises proof",
				"Pay the license fee based on business category",
				"Inspection is scheduled within 7 working days",
			},
			Documents: []string{"Shop Act registration", "Premises ownership/rent agreement", "Identity proof", "Passport photo"},
			PortalURL: CitizenPortalURL,
			Contacts:  []Contact{{Name: "License Department", Phone: "0231-2540294"}},
		},
	},
	"complaints": {
		"": {
			Description: "Civic complaints: garbage, street lights, roads, drainage, stray animals and encroachment.",
			Steps: []string{
				"Register the complaint on the citizen portal with a photo and location",
				"Note the complaint token number",
				"Track status online; unresolved complaints escalate to the ward officer after 7 days",
			},
			PortalURL: CitizenPortalURL,
			Contacts:  []Contact{{Name: "Complaint Cell", Phone: "0231-2540295", Hours: "24x7"}},
		},
	},
	"contact": {
		"": {
			Description: "Kolhapur Municipal Corporation main office, Shivaji Chowk, Kolhapur 416002.",
			Contacts: []Contact{
				{Name: "Main Office", Phone: "0231-2540291", Hours: "10:00-17:45 Mon-Sat"},
				{Name: "Complaint Cell", Phone: "0231-2540295", Hours: "24x7"},
				{Name: "Disaster Control Room", Phone: "0231-2540297", Hours: "24x7"},
			},
			PortalURL: CitizenPortalURL,
		},
	},
	"disaster": {
		"": {
			Description: "Disaster management cell: flood monitoring, emergency response and relief coordination for Kolhapur city.",
			Contacts:    []Contact{{Name: "Disaster Control Room", Phone: "0231-2540297", Hours: "24x7"}},
		},
		"emergency_contacts": {
			Description: "Emergency helplines for Kolhapur city.",
			Contacts: []Contact{
				{Name: "Disaster Control Room", Phone: "0231-2540297", Hours: "24x7"},
				{Name: "Fire Brigade", Phone: "101"},
				{Name: "Police", Phone: "100"},
				{Name: "Ambulance", Phone: "108"},
			},
		},
		"flood_safety": {
			Description: "Flood safety guidance for residents of low-lying areas near the Panchaganga river.",
			Steps: []string{
				"Move to upper floors or designated shelters when the alert is issued",
				"Keep documents and medicines in a waterproof bag",
				"Do not walk or drive through flowing water",
				"Switch off mains electricity before leaving the house",
			},
		},
		"rainfall_status": {
			// Illustrative figures; there is no live feed.
			Description: "Latest recorded rainfall and dam storage levels for the Kolhapur region.",
			Figures: map[string]string{
				"rainfall_24h":          "42 mm",
				"radhanagari_dam_level": "82% of capacity",
				"panchaganga_level":     "36.2 ft (warning level 39 ft)",
			},
		},
		"shelters": {
			Description: "Designated flood relief shelters within city limits.",
			Shelters: []Shelter{
				{Name: "Shahu Stadium Hall", Address: "Dasara Chowk", Capacity: 500},
				{Name: "Municipal School No. 5", Address: "Shivaji Peth", Capacity: 200},
				{Name: "Rajarampuri Community Hall", Address: "Rajarampuri 7th Lane", Capacity: 150},
			},
		},
		"report_emergency": {
			Description: "Report a flood, fire or building collapse emergency to the control room. Give your exact location and a callback number.",
			Contacts:    []Contact{{Name: "Disaster Control Room", Phone: "0231-2540297", Hours: "24x7"}},
		},
		"preparedness": {
			Description: "Household disaster preparedness guidance.",
			Steps: []string{
				"Keep an emergency kit: torch, batteries, drinking water, dry food, first aid",
				"Save the control room number 0231-2540297 in your phone",
				"Know your nearest shelter location",
				"Agree on a family meeting point in advance",
			},
		},
	},
}

// Categories returns the known category keys in sorted order, for the
// retrieval tool's enum parameter.
func Categories() []string {
	keys := make([]string, 0, len(facts))
	for k := range facts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the structured facts for a category and optional
// subcategory. An unknown category returns ErrUnknownCategory; an unknown
// subcategory falls back to the category overview.
func Lookup(category, subcategory string) (Facts, error) {
	subs, ok := facts[category]
	if !ok {
		return Facts{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if subcategory != "" {
		if f, ok := subs[subcategory]; ok {
			return f, nil
		}
	}
	return subs[""], nil
}
