package questions

// Message constants
const (
	MsgShort   = "Show the questions a template asks"
	MsgLong    = "Load a template's question file and list its questions in the order they are asked.\n\nNothing is generated and no hooks run."
	MsgExample = `  kiln questions ./template            # Table of questions
  kiln questions ./template --json     # Machine-readable list
  kiln questions ./template --details  # One section per question, help as markdown`
	MsgFlagJSON    = "Print the questions as JSON"
	MsgFlagDetails = "Print one markdown section per question"
	MsgNoQuestion  = "Template %s asks no questions.\n"
)
