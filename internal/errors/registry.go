package errors

// Template is the registered description of a code.
type Template struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vango.dev/docs/declarative/errors/"

var registry = map[string]Template{
	// Branch structure (E101-E109)
	"E101": {
		Category: CategoryStructure,
		Message:  "If has no Then branch",
		Detail:   "Every If needs exactly one Then branch as its first child; the branch list is empty.",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryStructure,
		Message:  "Then branch is not first",
		Detail:   "The Then branch renders when the If condition is true and must be the first branch.",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryStructure,
		Message:  "Duplicate Then branch",
		Detail:   "An If may contain only one Then branch. Use ElseIf for further conditions.",
		DocURL:   docBase + "E103",
	},
	"E104": {
		Category: CategoryStructure,
		Message:  "Else branch is not last",
		Detail:   "Else renders when nothing before it matched, so no branch may follow it.",
		DocURL:   docBase + "E104",
	},
	"E105": {
		Category: CategoryStructure,
		Message:  "Duplicate Else branch",
		Detail:   "An If may contain at most one Else branch.",
		DocURL:   docBase + "E105",
	},

	// Ambient context (E110-E119)
	"E110": {
		Category: CategoryContext,
		Message:  "PortalProvider not found",
		Detail:   "PortalInput and PortalOutput must be rendered below a PortalProvider, usually near the root of the tree.",
		DocURL:   docBase + "E110",
	},
	"E111": {
		Category: CategoryContext,
		Message:  "Portal identifier is not comparable",
		Detail:   "Portal identifiers are matched with ==, so their dynamic value must be comparable.",
		DocURL:   docBase + "E111",
	},

	// Configuration (E120-E129)
	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "declarative.json could not be read or parsed.",
		DocURL:   docBase + "E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "server.port must be between 1 and 65535.",
		DocURL:   docBase + "E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "logLevel must be one of debug, info, warn or error.",
		DocURL:   docBase + "E122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Snapshot bucket not configured",
		Detail:   "Publishing needs snapshot.bucket and snapshot.region.",
		DocURL:   docBase + "E123",
	},
	"E124": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No declarative.json exists at the given location.",
		DocURL:   docBase + "E124",
	},

	// Rendering and publishing (E130-E149)
	"E130": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The view tree could not be written as HTML.",
		DocURL:   docBase + "E130",
	},
	"E140": {
		Category: CategoryPublish,
		Message:  "Snapshot upload failed",
		Detail:   "The object store rejected the snapshot.",
		DocURL:   docBase + "E140",
	},

	// CLI and playground input (E150-E159)
	"E150": {
		Category: CategoryCLI,
		Message:  "Unknown signal",
		Detail:   "The demo tree has no signal with this name.",
		DocURL:   docBase + "E150",
	},
	"E151": {
		Category: CategoryCLI,
		Message:  "Invalid signal assignment",
		Detail:   "Signal assignments take the form name=true, name=false or name=toggle.",
		DocURL:   docBase + "E151",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// Codes returns every registered code.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
