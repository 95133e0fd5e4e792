package contract

// NewElement returns a fresh record for the list or optional section stored
// under field, for hosts that let the user grow a contract. ok is false for
// fields that hold neither.
func NewElement(field string) (elem any, ok bool) {
	switch field {
	case "description", "visible_damages":
		return "", true
	case "client_contact_events":
		return NewContactEvent(""), true
	case "performed_repairs":
		return PerformedRepair{}, true
	case "parts_replaced":
		return ReplacementPart{}, true
	case "replacement_device":
		return NewReplacementDevice(), true
	case "final_protocol":
		return NewFinalProtocol(), true
	}
	return nil, false
}
