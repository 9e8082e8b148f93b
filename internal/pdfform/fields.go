// Package pdfform maps the agent-to-agent agreement form onto the AcroForm
// fields of its fillable PDF template.
package pdfform

// Kind is how a record value is written into the template
type Kind int

const (
	Text     Kind = iota
	Checkbox      // "true", "yes", "on" or "1" checks the box
	YesNo         // "yes" or "no" checks one of a pair of boxes
)

// Field binds a record key to a template field
type Field struct {
	Key      string
	Section  string
	Label    string
	Name     string // AcroForm field name; the "yes" box for YesNo
	NoName   string // the "no" box for YesNo
	Kind     Kind
	Required bool
}

// Sections in form order
const (
	SectionGeneral    = "General"
	SectionAgentA     = "Agent A"
	SectionAgentB     = "Agent B"
	SectionProperty   = "Property"
	SectionCommission = "Commission"
)

// Fields is the complete field table in form order
var Fields = []Field{
	{Key: "date", Section: SectionGeneral, Label: "Date", Name: "DATE", Required: true},

	{Key: "agentA.nameOfEstablishment", Section: SectionAgentA, Label: "Name of Establishment", Name: "Name of establishment- A", Required: true},
	{Key: "agentA.address", Section: SectionAgentA, Label: "Address", Name: "Address of Agent A", Required: true},
	{Key: "agentA.poBox", Section: SectionAgentA, Label: "P.O. Box", Name: "PO - Agent A"},
	{Key: "agentA.phone", Section: SectionAgentA, Label: "Phone", Name: "Phone - Agent A", Required: true},
	{Key: "agentA.fax", Section: SectionAgentA, Label: "Fax", Name: "Fax - Agent A"},
	{Key: "agentA.email", Section: SectionAgentA, Label: "Email (Establishment)", Name: "Email - Agent A", Required: true},
	{Key: "agentA.orn", Section: SectionAgentA, Label: "ORN", Name: "ORN - Agent A"},
	{Key: "agentA.dedLicense", Section: SectionAgentA, Label: "DED License", Name: "DED licence- Agent A"},
	{Key: "agentA.nameOfRegisteredAgent", Section: SectionAgentA, Label: "Name of Registered Agent", Name: "Name of Registered Agent A", Required: true},
	{Key: "agentA.brn", Section: SectionAgentA, Label: "BRN", Name: "BRN of Agent A"},
	{Key: "agentA.dateIssued", Section: SectionAgentA, Label: "Date Issued", Name: "Date Issued- Agent A"},
	{Key: "agentA.mobile", Section: SectionAgentA, Label: "Mobile", Name: "Mobile - Agent A"},
	{Key: "agentA.agentEmail", Section: SectionAgentA, Label: "Email (Agent)", Name: "Email _ Registered agent A"},

	{Key: "agentB.nameOfEstablishment", Section: SectionAgentB, Label: "Name of Establishment", Name: "Name of establishment - Agent B", Required: true},
	{Key: "agentB.address", Section: SectionAgentB, Label: "Address", Name: "ADDRESS - Agent B", Required: true},
	{Key: "agentB.poBox", Section: SectionAgentB, Label: "P.O. Box", Name: "PO - Agent B"},
	{Key: "agentB.phone", Section: SectionAgentB, Label: "Phone", Name: "Phone - agent B", Required: true},
	{Key: "agentB.fax", Section: SectionAgentB, Label: "Fax", Name: "Fax - Agent B"},
	{Key: "agentB.email", Section: SectionAgentB, Label: "Email (Establishment)", Name: "Email - Agent B", Required: true},
	{Key: "agentB.orn", Section: SectionAgentB, Label: "ORN", Name: "ORN - Agent B"},
	{Key: "agentB.dedLicense", Section: SectionAgentB, Label: "DED License", Name: "DED License - Agent B"},
	{Key: "agentB.nameOfRegisteredAgent", Section: SectionAgentB, Label: "Name of Registered Agent", Name: "Name of registered Agent B", Required: true},
	{Key: "agentB.brn", Section: SectionAgentB, Label: "BRN", Name: "BRN - Agent B"},
	{Key: "agentB.dateIssued", Section: SectionAgentB, Label: "Date Issued", Name: "Date Issued - Agent B"},
	{Key: "agentB.mobile", Section: SectionAgentB, Label: "Mobile", Name: "Mobile - Agent B"},
	{Key: "agentB.agentEmail", Section: SectionAgentB, Label: "Email (Agent)", Name: "Email- Registered Agent B"},

	{Key: "property.propertyAddress", Section: SectionProperty, Label: "Property Address", Name: "Property address", Required: true},
	{Key: "property.masterDeveloper", Section: SectionProperty, Label: "Master Developer", Name: "Master Developer"},
	{Key: "property.masterProject", Section: SectionProperty, Label: "Master Project", Name: "Master Project"},
	{Key: "property.buildingName", Section: SectionProperty, Label: "Building Name", Name: "Building name"},
	{Key: "property.listedPrice", Section: SectionProperty, Label: "Listed Price", Name: "Listed Price", Required: true},

	{Key: "commission.isBuyer", Section: SectionCommission, Label: "Buyer", Name: "Buyer Check Box", Kind: Checkbox},
	{Key: "commission.isSeller", Section: SectionCommission, Label: "Seller", Name: "Seller Check box", Kind: Checkbox},
	{Key: "commission.isLandlord", Section: SectionCommission, Label: "Landlord", Name: "Landlord check box", Kind: Checkbox},
	{Key: "commission.isTenant", Section: SectionCommission, Label: "Tenant", Name: "Tenant check box", Kind: Checkbox},
	{Key: "commission.agentACommission", Section: SectionCommission, Label: "Agent A", Name: "Agent A"},
	{Key: "commission.agentBCommission", Section: SectionCommission, Label: "Agent B", Name: "Agent B"},
	{Key: "commission.clientsName", Section: SectionCommission, Label: "Client's Name", Name: "Clientss Name", Required: true},
	{Key: "commission.clientContactedListingAgent", Section: SectionCommission, Label: "Client contacted listing agent", Name: "Yes check box", NoName: "No check box", Kind: YesNo},
}

// Signature and company footer fields, always written blank
var clearedFields = []string{"Party A", "Party B", "Company email", "Company website", "company location"}

// Lookup returns the field bound to key
func Lookup(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
