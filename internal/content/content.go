// Package content renders the canned multilingual message bodies sent by
// the assistant: the language prompt, menu screens, per-service
// instructions, reminder footers and the fixed apology strings. All text
// is pre-written per language; the only substitution is the certificate
// type (birth vs death).
package content

import (
	"fmt"
	"strings"

	"github.com/kolhapurmc/civicbot/internal/menu"
	"github.com/kolhapurmc/civicbot/internal/models"
)

// HelplineNumber is the human contact channel named in apology messages.
const HelplineNumber = "0231-2540291"

// CitizenPortalURL is repeated in service bodies that point at the online
// portal.
const CitizenPortalURL = "https://web.kolhapurcorporation.gov.in/citizen"

// pick returns the body for the session language, defaulting to English
// when the language is unset or has no rendering.
func pick(bodies map[models.Language]string, lang models.Language) string {
	if body, ok := bodies[lang]; ok {
		return body
	}
	return bodies[models.LanguageEnglish]
}

// LanguagePrompt is the trilingual greeting shown to every new session.
func LanguagePrompt() string {
	return "नमस्कार! Welcome to Kolhapur Municipal Corporation's citizen assistant.\n\n" +
		"Please choose your language:\nकृपया आपली भाषा निवडा:\nकृपया अपनी भाषा चुनें:\n\n" +
		"1. English\n2. मराठी (Marathi)\n3. हिंदी (Hindi)\n\n" +
		"Reply with 1, 2 or 3."
}

var menuHeaders = map[models.Language]string{
	models.LanguageEnglish: "*Kolhapur Municipal Corporation*\nHow can we help you today?",
	models.LanguageMarathi: "*कोल्हापूर महानगरपालिका*\nआम्ही आपली काय मदत करू शकतो?",
	models.LanguageHindi:   "*कोल्हापुर महानगरपालिका*\nहम आपकी क्या सहायता कर सकते हैं?",
}

var menuFooters = map[models.Language]string{
	models.LanguageEnglish: "Reply with a number.",
	models.LanguageMarathi: "क्रमांक टाइप करून उत्तर द्या.",
	models.LanguageHindi:   "क्रमांक टाइप करके उत्तर दें.",
}

var disasterHeaders = map[models.Language]string{
	models.LanguageEnglish: "*Disaster Management*\nChoose an option:",
	models.LanguageMarathi: "*आपत्ती व्यवस्थापन*\nपर्याय निवडा:",
	models.LanguageHindi:   "*आपदा प्रबंधन*\nविकल्प चुनें:",
}

func renderMenu(header string, options []menu.Option, footer string, lang models.Language) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for _, opt := range options {
		label, ok := opt.Labels[lang]
		if !ok {
			label = opt.Labels[models.LanguageEnglish]
		}
		fmt.Fprintf(&b, "%s. %s\n", opt.Number, label)
	}
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// MainMenu renders the numbered main service menu in the given language.
func MainMenu(lang models.Language) string {
	return renderMenu(pick(menuHeaders, lang), menu.Main(), pick(menuFooters, lang), lang)
}

// DisasterMenu renders the disaster-management sub-menu in the given
// language.
func DisasterMenu(lang models.Language) string {
	return renderMenu(pick(disasterHeaders, lang), menu.DisasterSub(), pick(menuFooters, lang), lang)
}

// MainMenuReminder is the footer appended to service replies, pointing the
// user back at the menu.
func MainMenuReminder(lang models.Language) string {
	return pick(map[models.Language]string{
		models.LanguageEnglish: "Type *menu* to see all services again.",
		models.LanguageMarathi: "सर्व सेवा पुन्हा पाहण्यासाठी *menu* टाइप करा.",
		models.LanguageHindi:   "सभी सेवाएं फिर से देखने के लिए *menu* टाइप करें.",
	}, lang)
}

// DisasterReminder is the footer appended to disaster sub-service replies.
func DisasterReminder(lang models.Language) string {
	return pick(map[models.Language]string{
		models.LanguageEnglish: "Reply with a number (1-7), or type *menu* for the main menu.",
		models.LanguageMarathi: "क्रमांक (1-7) टाइप करा, किंवा मुख्य मेनूसाठी *menu* टाइप करा.",
		models.LanguageHindi:   "क्रमांक (1-7) टाइप करें, या मुख्य मेनू के लिए *menu* टाइप करें.",
	}, lang)
}

// WithMainReminder appends the main-menu reminder footer to a body.
func WithMainReminder(body string, lang models.Language) string {
	return body + "\n\n" + MainMenuReminder(lang)
}

// WithDisasterReminder appends the sub-menu reminder footer to a body.
func WithDisasterReminder(body string, lang models.Language) string {
	return body + "\n\n" + DisasterReminder(lang)
}

// FreeTextPrompt asks the user to type their question after choosing the
// free-text escape option.
func FreeTextPrompt(lang models.Language) string {
	return pick(map[models.Language]string{
		models.LanguageEnglish: "Please type your question and I will do my best to help. Type *menu* anytime to return to the service menu.",
		models.LanguageMarathi: "कृपया आपला प्रश्न टाइप करा, मी मदत करण्याचा पूर्ण प्रयत्न करेन. मेनूवर परत जाण्यासाठी कधीही *menu* टाइप करा.",
		models.LanguageHindi:   "कृपया अपना प्रश्न टाइप करें, मैं पूरी कोशिश करूंगा. मेनू पर वापस जाने के लिए कभी भी *menu* टाइप करें.",
	}, lang)
}

// ClearConfirmation acknowledges a /clear command.
func ClearConfirmation(lang models.Language) string {
	return pick(map[models.Language]string{
		models.LanguageEnglish: "Your conversation has been reset. Send any message to start again.",
		models.LanguageMarathi: "आपले संभाषण रीसेट केले आहे. पुन्हा सुरू करण्यासाठी कोणताही संदेश पाठवा.",
		models.LanguageHindi:   "आपकी बातचीत रीसेट कर दी गई है. फिर से शुरू करने के लिए कोई भी संदेश भेजें.",
	}, lang)
}

// Apology is the fixed top-level failure message. It already tells the
// user how to recover, so no reminder footer is appended to it.
func Apology(lang models.Language) string {
	return pick(map[models.Language]string{
		models.LanguageEnglish: "Sorry, something went wrong on our side. Please type *menu* to start again, or call our helpline " + HelplineNumber + ".",
		models.LanguageMarathi: "क्षमस्व, आमच्याकडून काहीतरी चूक झाली. कृपया पुन्हा सुरू करण्यासाठी *menu* टाइप करा, किंवा आमच्या हेल्पलाइन " + HelplineNumber + " वर कॉल करा.",
		models.LanguageHindi:   "क्षमा करें, हमारी ओर से कुछ गड़बड़ हुई. कृपया फिर से शुरू करने के लिए *menu* टाइप करें, या हमारी हेल्पलाइन " + HelplineNumber + " पर कॉल करें.",
	}, lang)
}

// FallbackApology is the fixed message returned when the free-text
// completion fails or comes back empty. It carries its own recovery
// guidance and is returned without an extra reminder footer.
func FallbackApology(lang models.Language) string {
	return pick(map[models.Language]string{
		models.LanguageEnglish: "Sorry, I could not answer that right now. Please type *menu* to see the list of services, or call " + HelplineNumber + " for help.",
		models.LanguageMarathi: "क्षमस्व, मी आत्ता उत्तर देऊ शकलो नाही. कृपया सेवांची यादी पाहण्यासाठी *menu* टाइप करा, किंवा मदतीसाठी " + HelplineNumber + " वर कॉल करा.",
		models.LanguageHindi:   "क्षमा करें, मैं अभी उत्तर नहीं दे सका. कृपया सेवाओं की सूची देखने के लिए *menu* टाइप करें, या सहायता के लिए " + HelplineNumber + " पर कॉल करें.",
	}, lang)
}

var certificateNames = map[models.Category]map[models.Language]string{
	models.CategoryBirthCertificate: {
		models.LanguageEnglish: "Birth",
		models.LanguageMarathi: "जन्म",
		models.LanguageHindi:   "जन्म",
	},
	models.CategoryDeathCertificate: {
		models.LanguageEnglish: "Death",
		models.LanguageMarathi: "मृत्यू",
		models.LanguageHindi:   "मृत्यु",
	},
}

// The two certificate services share one body; only the certificate type
// is substituted.
var certificateBodies = map[models.Language]string{
	models.LanguageEnglish: "*%s Certificate*\n\nHow to apply:\n1. Apply online at " + CitizenPortalURL + " or at the Health Department counter, KMC main office.\n2. Attach the hospital report and identity proof of the applicant.\n3. Pay the certificate fee.\n4. Collect the certificate in 3 working days or download it from the portal.\n\nHelp: Health Department (Registrar), 0231-2540293.",
	models.LanguageMarathi: "*%s प्रमाणपत्र*\n\nअर्ज कसा करावा:\n1. " + CitizenPortalURL + " येथे ऑनलाइन किंवा महानगरपालिका मुख्य कार्यालयातील आरोग्य विभागाच्या खिडकीवर अर्ज करा.\n2. रुग्णालयाचा अहवाल आणि अर्जदाराचा ओळखीचा पुरावा जोडा.\n3. प्रमाणपत्र शुल्क भरा.\n4. 3 कामकाजाच्या दिवसांत प्रमाणपत्र घ्या किंवा पोर्टलवरून डाउनलोड करा.\n\nमदत: आरोग्य विभाग (निबंधक), 0231-2540293.",
	models.LanguageHindi:   "*%s प्रमाणपत्र*\n\nआवेदन कैसे करें:\n1. " + CitizenPortalURL + " पर ऑनलाइन या महानगरपालिका मुख्य कार्यालय के स्वास्थ्य विभाग काउंटर पर आवेदन करें.\n2. अस्पताल की रिपोर्ट और आवेदक का पहचान प्रमाण संलग्न करें.\n3. प्रमाणपत्र शुल्क भरें.\n4. 3 कार्य दिवसों में प्रमाणपत्र प्राप्त करें या पोर्टल से डाउनलोड करें.\n\nसहायता: स्वास्थ्य विभाग (निबंधक), 0231-2540293.",
}

var serviceBodies = map[models.Category]map[models.Language]string{
	models.CategoryWater: {
		models.LanguageEnglish: "*Water Supply*\n\n- Pay your water bill online at " + CitizenPortalURL + " using the consumer number printed on the bill.\n- For a new connection, apply at your ward office with ownership proof and identity proof.\n- Report leakages or meter faults to the Water Works Department: 0231-2540292 (10:00-17:45 Mon-Sat).",
		models.LanguageMarathi: "*पाणीपुरवठा*\n\n- बिलावरील ग्राहक क्रमांक वापरून " + CitizenPortalURL + " येथे पाणी बिल ऑनलाइन भरा.\n- नवीन नळजोडणीसाठी मालकी पुरावा आणि ओळखपत्रासह आपल्या प्रभाग कार्यालयात अर्ज करा.\n- गळती किंवा मीटर बिघाडाची तक्रार पाणीपुरवठा विभागाकडे करा: 0231-2540292 (सोम-शनि 10:00-17:45).",
		models.LanguageHindi:   "*जल आपूर्ति*\n\n- बिल पर छपे उपभोक्ता क्रमांक से " + CitizenPortalURL + " पर पानी का बिल ऑनलाइन भरें.\n- नए नल कनेक्शन के लिए स्वामित्व प्रमाण और पहचान पत्र के साथ अपने वार्ड कार्यालय में आवेदन करें.\n- रिसाव या मीटर खराबी की शिकायत जल विभाग से करें: 0231-2540292 (सोम-शनि 10:00-17:45).",
	},
	models.CategoryPropertyTax: {
		models.LanguageEnglish: "*Property Tax*\n\n- Pay online at " + CitizenPortalURL + " using your property number (printed on the previous bill).\n- Early payment before 30 June earns a rebate.\n- You can also pay at any ward office by cash, card or UPI.\n\nHelp: Property Tax Department, 0231-2540291 (10:00-17:45 Mon-Sat).",
		models.LanguageMarathi: "*मालमत्ता कर*\n\n- मागील बिलावरील मालमत्ता क्रमांक वापरून " + CitizenPortalURL + " येथे ऑनलाइन भरा.\n- 30 जूनपूर्वी भरल्यास सवलत मिळते.\n- कोणत्याही प्रभाग कार्यालयात रोख, कार्ड किंवा UPI ने देखील भरता येतो.\n\nमदत: मालमत्ता कर विभाग, 0231-2540291 (सोम-शनि 10:00-17:45).",
		models.LanguageHindi:   "*संपत्ति कर*\n\n- पिछले बिल पर छपे संपत्ति क्रमांक से " + CitizenPortalURL + " पर ऑनलाइन भरें.\n- 30 जून से पहले भुगतान करने पर छूट मिलती है.\n- किसी भी वार्ड कार्यालय में नकद, कार्ड या UPI से भी भर सकते हैं.\n\nसहायता: संपत्ति कर विभाग, 0231-2540291 (सोम-शनि 10:00-17:45).",
	},
	models.CategoryTradeLicense: {
		models.LanguageEnglish: "*Trade License*\n\n- Apply online at " + CitizenPortalURL + " under Trade License.\n- Upload your Shop Act registration, premises proof, identity proof and a photo.\n- Pay the fee for your business category; inspection follows within 7 working days.\n- Renewal is due every financial year.\n\nHelp: License Department, 0231-2540294.",
		models.LanguageMarathi: "*व्यापार परवाना*\n\n- " + CitizenPortalURL + " येथे व्यापार परवाना विभागात ऑनलाइन अर्ज करा.\n- शॉप अ‍ॅक्ट नोंदणी, जागेचा पुरावा, ओळखपत्र आणि फोटो अपलोड करा.\n- व्यवसाय प्रकारानुसार शुल्क भरा; 7 कामकाजाच्या दिवसांत तपासणी होते.\n- दरवर्षी नूतनीकरण आवश्यक आहे.\n\nमदत: परवाना विभाग, 0231-2540294.",
		models.LanguageHindi:   "*व्यापार लाइसेंस*\n\n- " + CitizenPortalURL + " पर व्यापार लाइसेंस विभाग में ऑनलाइन आवेदन करें.\n- शॉप एक्ट पंजीकरण, परिसर प्रमाण, पहचान पत्र और फोटो अपलोड करें.\n- व्यवसाय श्रेणी के अनुसार शुल्क भरें; 7 कार्य दिवसों में निरीक्षण होता है.\n- हर वित्तीय वर्ष नवीनीकरण आवश्यक है.\n\nसहायता: लाइसेंस विभाग, 0231-2540294.",
	},
	models.CategoryComplaints: {
		models.LanguageEnglish: "*Complaints & Grievances*\n\n- Register civic complaints (garbage, street lights, roads, drainage) at " + CitizenPortalURL + " with a photo and location.\n- Note your complaint token number to track status online.\n- Unresolved complaints escalate to the ward officer after 7 days.\n\nComplaint Cell (24x7): 0231-2540295.",
		models.LanguageMarathi: "*तक्रारी*\n\n- नागरी तक्रारी (कचरा, पथदिवे, रस्ते, गटारे) फोटो आणि ठिकाणासह " + CitizenPortalURL + " येथे नोंदवा.\n- स्थिती ऑनलाइन पाहण्यासाठी तक्रार टोकन क्रमांक जपून ठेवा.\n- 7 दिवसांत निराकरण न झाल्यास तक्रार प्रभाग अधिकाऱ्याकडे जाते.\n\nतक्रार कक्ष (24x7): 0231-2540295.",
		models.LanguageHindi:   "*शिकायतें*\n\n- नागरिक शिकायतें (कचरा, स्ट्रीट लाइट, सड़कें, नालियां) फोटो और स्थान के साथ " + CitizenPortalURL + " पर दर्ज करें.\n- स्थिति ऑनलाइन देखने के लिए शिकायत टोकन क्रमांक नोट करें.\n- 7 दिनों में समाधान न होने पर शिकायत वार्ड अधिकारी तक जाती है.\n\nशिकायत कक्ष (24x7): 0231-2540295.",
	},
	models.CategoryContact: {
		models.LanguageEnglish: "*Contact Us*\n\nKolhapur Municipal Corporation\nShivaji Chowk, Kolhapur 416002\n\nMain Office: 0231-2540291 (10:00-17:45 Mon-Sat)\nComplaint Cell (24x7): 0231-2540295\nDisaster Control Room (24x7): 0231-2540297\n\nOnline services: " + CitizenPortalURL,
		models.LanguageMarathi: "*संपर्क*\n\nकोल्हापूर महानगरपालिका\nशिवाजी चौक, कोल्हापूर 416002\n\nमुख्य कार्यालय: 0231-2540291 (सोम-शनि 10:00-17:45)\nतक्रार कक्ष (24x7): 0231-2540295\nआपत्ती नियंत्रण कक्ष (24x7): 0231-2540297\n\nऑनलाइन सेवा: " + CitizenPortalURL,
		models.LanguageHindi:   "*संपर्क करें*\n\nकोल्हापुर महानगरपालिका\nशिवाजी चौक, कोल्हापुर 416002\n\nमुख्य कार्यालय: 0231-2540291 (सोम-शनि 10:00-17:45)\nशिकायत कक्ष (24x7): 0231-2540295\nआपदा नियंत्रण कक्ष (24x7): 0231-2540297\n\nऑनलाइन सेवाएं: " + CitizenPortalURL,
	},
}

// ServiceInfo returns the canned body for a main-menu service category.
// The disaster and free-text categories have no canned body; they are
// handled by their own screens.
func ServiceInfo(cat models.Category, lang models.Language) (string, bool) {
	if names, ok := certificateNames[cat]; ok {
		return fmt.Sprintf(pick(certificateBodies, lang), pick(names, lang)), true
	}
	bodies, ok := serviceBodies[cat]
	if !ok {
		return "", false
	}
	return pick(bodies, lang), true
}

var disasterBodies = map[models.Category]map[models.Language]string{
	menu.SubEmergencyContacts: {
		models.LanguageEnglish: "*Emergency Contacts*\n\nDisaster Control Room (24x7): 0231-2540297\nFire Brigade: 101\nPolice: 100\nAmbulance: 108",
		models.LanguageMarathi: "*आपत्कालीन संपर्क*\n\nआपत्ती नियंत्रण कक्ष (24x7): 0231-2540297\nअग्निशमन दल: 101\nपोलीस: 100\nरुग्णवाहिका: 108",
		models.LanguageHindi:   "*आपातकालीन संपर्क*\n\nआपदा नियंत्रण कक्ष (24x7): 0231-2540297\nदमकल: 101\nपुलिस: 100\nएम्बुलेंस: 108",
	},
	menu.SubFloodSafety: {
		models.LanguageEnglish: "*Flood Safety*\n\n- Move to upper floors or a designated shelter when an alert is issued.\n- Keep documents and medicines in a waterproof bag.\n- Never walk or drive through flowing water.\n- Switch off mains electricity before leaving the house.",
		models.LanguageMarathi: "*पूर सुरक्षा*\n\n- इशारा मिळताच वरच्या मजल्यावर किंवा निश्चित निवाऱ्यात जा.\n- कागदपत्रे आणि औषधे वॉटरप्रूफ पिशवीत ठेवा.\n- वाहत्या पाण्यातून कधीही चालू किंवा वाहन चालवू नका.\n- घर सोडण्यापूर्वी मुख्य वीजपुरवठा बंद करा.",
		models.LanguageHindi:   "*बाढ़ सुरक्षा*\n\n- चेतावनी मिलते ही ऊपरी मंजिल या निर्धारित आश्रय में जाएं.\n- दस्तावेज और दवाइयां वाटरप्रूफ बैग में रखें.\n- बहते पानी में कभी न चलें और न वाहन चलाएं.\n- घर छोड़ने से पहले मुख्य बिजली बंद करें.",
	},
	menu.SubRainfallStatus: {
		models.LanguageEnglish: "*Rainfall & Dam Status*\n\nRainfall (last 24h): 42 mm\nRadhanagari dam: 82% of capacity\nPanchaganga river: 36.2 ft (warning level 39 ft)",
		models.LanguageMarathi: "*पर्जन्य व धरण स्थिती*\n\nपाऊस (गेले 24 तास): 42 मिमी\nराधानगरी धरण: क्षमतेच्या 82%\nपंचगंगा नदी: 36.2 फूट (इशारा पातळी 39 फूट)",
		models.LanguageHindi:   "*वर्षा एवं बांध स्थिति*\n\nवर्षा (पिछले 24 घंटे): 42 मिमी\nराधानगरी बांध: क्षमता का 82%\nपंचगंगा नदी: 36.2 फीट (चेतावनी स्तर 39 फीट)",
	},
	menu.SubShelters: {
		models.LanguageEnglish: "*Relief Shelters*\n\n1. Shahu Stadium Hall, Dasara Chowk (capacity 500)\n2. Municipal School No. 5, Shivaji Peth (capacity 200)\n3. Rajarampuri Community Hall, 7th Lane (capacity 150)",
		models.LanguageMarathi: "*मदत निवारे*\n\n1. शाहू स्टेडियम हॉल, दसरा चौक (क्षमता 500)\n2. महापालिका शाळा क्र. 5, शिवाजी पेठ (क्षमता 200)\n3. राजारामपुरी समाज मंदिर, 7 वी गल्ली (क्षमता 150)",
		models.LanguageHindi:   "*राहत आश्रय*\n\n1. शाहू स्टेडियम हॉल, दशहरा चौक (क्षमता 500)\n2. महापालिका स्कूल क्र. 5, शिवाजी पेठ (क्षमता 200)\n3. राजारामपुरी सामुदायिक भवन, 7वीं गली (क्षमता 150)",
	},
	menu.SubReportEmergency: {
		models.LanguageEnglish: "*Report an Emergency*\n\nCall the Disaster Control Room (24x7): 0231-2540297.\nGive your exact location and a callback number. For fire call 101, for medical emergencies call 108.",
		models.LanguageMarathi: "*आपत्कालीन तक्रार*\n\nआपत्ती नियंत्रण कक्षाला (24x7) कॉल करा: 0231-2540297.\nआपले नेमके ठिकाण आणि संपर्क क्रमांक सांगा. आगीसाठी 101, वैद्यकीय मदतीसाठी 108 वर कॉल करा.",
		models.LanguageHindi:   "*आपातकाल की सूचना दें*\n\nआपदा नियंत्रण कक्ष (24x7) को कॉल करें: 0231-2540297.\nअपना सटीक स्थान और संपर्क नंबर बताएं. आग के लिए 101, चिकित्सा आपातकाल के लिए 108 पर कॉल करें.",
	},
	menu.SubPreparedness: {
		models.LanguageEnglish: "*Disaster Preparedness*\n\n- Keep an emergency kit: torch, batteries, drinking water, dry food, first aid.\n- Save the control room number 0231-2540297 in your phone.\n- Know your nearest relief shelter.\n- Agree on a family meeting point in advance.",
		models.LanguageMarathi: "*आपत्ती पूर्वतयारी*\n\n- आपत्कालीन किट ठेवा: टॉर्च, बॅटरी, पिण्याचे पाणी, कोरडे अन्न, प्रथमोपचार.\n- नियंत्रण कक्षाचा क्रमांक 0231-2540297 फोनमध्ये जतन करा.\n- जवळचा मदत निवारा माहीत करून घ्या.\n- कुटुंबाचे भेटीचे ठिकाण आधीच ठरवा.",
		models.LanguageHindi:   "*आपदा तैयारी*\n\n- आपातकालीन किट रखें: टॉर्च, बैटरी, पीने का पानी, सूखा भोजन, प्राथमिक उपचार.\n- नियंत्रण कक्ष का नंबर 0231-2540297 फोन में सेव करें.\n- नजदीकी राहत आश्रय की जानकारी रखें.\n- परिवार का मिलने का स्थान पहले से तय करें.",
	},
}

// DisasterInfo returns the canned body for a disaster sub-option tag.
func DisasterInfo(sub models.Category, lang models.Language) (string, bool) {
	bodies, ok := disasterBodies[sub]
	if !ok {
		return "", false
	}
	return pick(bodies, lang), true
}
