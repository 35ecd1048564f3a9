// Package menu defines the static service catalog for civicbot.
//
// The catalog is loaded once at process start and never mutated. Option
// numbers are contiguous one-character keys starting at "1"; the last main
// menu entry is always the free-text escape option.
package menu

import "github.com/kolhapurmc/civicbot/internal/models"

// Option is a selectable entry in the main menu or a sub-menu.
type Option struct {
	Number   string                             // stable one-character key
	Labels   map[models.Language]string         // display string per language
	Category models.Category                    // dispatch tag
	Keywords []string                           // extra match words, Latin and native script
}

// BackCategory tags the disaster sub-option that returns to the main menu.
const BackCategory models.Category = "back"

// Disaster sub-menu dispatch tags. These double as knowledge base
// subcategory keys.
const (
	SubEmergencyContacts = "emergency_contacts"
	SubFloodSafety       = "flood_safety"
	SubRainfallStatus    = "rainfall_status"
	SubShelters          = "shelters"
	SubReportEmergency   = "report_emergency"
	SubPreparedness      = "preparedness"
)

var mainMenu = []Option{
	{
		Number: "1",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Water Billing",
			models.LanguageMarathi: "पाणी बिल",
			models.LanguageHindi:   "पानी बिल",
		},
		Category: models.CategoryWater,
		Keywords: []string{"water", "pani"},
	},
	{
		Number: "2",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Property Tax",
			models.LanguageMarathi: "मालमत्ता कर",
			models.LanguageHindi:   "संपत्ति कर",
		},
		Category: models.CategoryPropertyTax,
		Keywords: []string{"property", "tax", "malmatta"},
	},
	{
		Number: "3",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Birth Certificate",
			models.LanguageMarathi: "जन्म दाखला",
			models.LanguageHindi:   "जन्म प्रमाणपत्र",
		},
		Category: models.CategoryBirthCertificate,
		Keywords: []string{"birth", "janma"},
	},
	{
		Number: "4",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Death Certificate",
			models.LanguageMarathi: "मृत्यू दाखला",
			models.LanguageHindi:   "मृत्यु प्रमाणपत्र",
		},
		Category: models.CategoryDeathCertificate,
		Keywords: []string{"death", "mrutyu"},
	},
	{
		Number: "5",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Trade License",
			models.LanguageMarathi: "व्यवसाय परवाना",
			models.LanguageHindi:   "व्यापार लाइसेंस",
		},
		Category: models.CategoryTradeLicense,
		Keywords: []string{"trade", "license", "licence", "parvana"},
	},
	{
		Number: "6",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Complaints",
			models.LanguageMarathi: "तक्रारी",
			models.LanguageHindi:   "शिकायतें",
		},
		Category: models.CategoryComplaints,
		Keywords: []string{"complaint", "grievance", "takrar", "shikayat"},
	},
	{
		Number: "7",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Disaster Management",
			models.LanguageMarathi: "आपत्ती व्यवस्थापन",
			models.LanguageHindi:   "आपदा प्रबंधन",
		},
		Category: models.CategoryDisaster,
		Keywords: []string{"disaster", "flood", "emergency", "aapatti", "aapda"},
	},
	{
		Number: "8",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Contact Information",
			models.LanguageMarathi: "संपर्क माहिती",
			models.LanguageHindi:   "संपर्क जानकारी",
		},
		Category: models.CategoryContact,
		Keywords: []string{"contact", "phone", "address", "sampark"},
	},
	{
		Number: "9",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Ask a Question",
			models.LanguageMarathi: "प्रश्न विचारा",
			models.LanguageHindi:   "प्रश्न पूछें",
		},
		Category: models.CategoryFreeText,
		Keywords: []string{"question", "ask", "other", "prashna"},
	},
}

var disasterSubMenu = []Option{
	{
		Number: "1",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Emergency Contacts",
			models.LanguageMarathi: "आपत्कालीन संपर्क",
			models.LanguageHindi:   "आपातकालीन संपर्क",
		},
		Category: models.Category(SubEmergencyContacts),
		Keywords: []string{"contact", "helpline", "number", "sampark"},
	},
	{
		Number: "2",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Flood Safety Tips",
			models.LanguageMarathi: "पूर सुरक्षा सूचना",
			models.LanguageHindi:   "बाढ़ सुरक्षा सुझाव",
		},
		Category: models.Category(SubFloodSafety),
		Keywords: []string{"flood", "safety", "pur", "poor"},
	},
	{
		Number: "3",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Rainfall & Dam Levels",
			models.LanguageMarathi: "पर्जन्य व धरण पातळी",
			models.LanguageHindi:   "वर्षा और बांध स्तर",
		},
		Category: models.Category(SubRainfallStatus),
		Keywords: []string{"rain", "dam", "level", "paus", "barish"},
	},
	{
		Number: "4",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Shelter Locations",
			models.LanguageMarathi: "निवारा केंद्रे",
			models.LanguageHindi:   "आश्रय स्थल",
		},
		Category: models.Category(SubShelters),
		Keywords: []string{"shelter", "nivara", "ashray"},
	},
	{
		Number: "5",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Report an Emergency",
			models.LanguageMarathi: "आपत्कालीन तक्रार नोंदवा",
			models.LanguageHindi:   "आपातकाल की सूचना दें",
		},
		Category: models.Category(SubReportEmergency),
		Keywords: []string{"report", "emergency"},
	},
	{
		Number: "6",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Preparedness Guidelines",
			models.LanguageMarathi: "पूर्वतयारी मार्गदर्शक",
			models.LanguageHindi:   "तैयारी दिशानिर्देश",
		},
		Category: models.Category(SubPreparedness),
		Keywords: []string{"prepare", "preparedness", "kit", "tayari"},
	},
	{
		Number: "7",
		Labels: map[models.Language]string{
			models.LanguageEnglish: "Back to Main Menu",
			models.LanguageMarathi: "मुख्य मेनू",
			models.LanguageHindi:   "मुख्य मेनू पर वापस",
		},
		Category: BackCategory,
		Keywords: []string{"back", "main menu", "menu", "parat", "wapas"},
	},
}

// Main returns the main service menu in catalog order.
func Main() []Option {
	return mainMenu
}

// DisasterSub returns the disaster management sub-menu in catalog order.
func DisasterSub() []Option {
	return disasterSubMenu
}

// FindByCategory returns the main menu option with the given category tag.
func FindByCategory(cat models.Category) (Option, bool) {
	for _, opt := range mainMenu {
		if opt.Category == cat {
			return opt, true
		}
	}
	return Option{}, false
}
