package core

// ActionType call action carried in the first field of a call payload
type ActionType int

const (
	// ActionTypeDefault default
	ActionTypeDefault ActionType = iota
	// ActionTypeAddCurrency register an asset as payment currency
	ActionTypeAddCurrency
	// ActionTypeRemoveCurrency drop a payment currency
	ActionTypeRemoveCurrency
	// ActionTypeAddWhiteList whitelist an oracle consumer
	ActionTypeAddWhiteList
	// ActionTypeRemoveWhiteList remove an oracle consumer
	ActionTypeRemoveWhiteList
	// ActionTypeBuyByNative buy product paying in native asset
	ActionTypeBuyByNative
	// ActionTypeBuyByToken buy product paying in a registered asset
	ActionTypeBuyByToken
)

var actionNames = map[ActionType]string{
	ActionTypeAddCurrency:     "addCurrency",
	ActionTypeRemoveCurrency:  "removeCurrency",
	ActionTypeAddWhiteList:    "addWhiteList",
	ActionTypeRemoveWhiteList: "removeWhiteList",
	ActionTypeBuyByNative:     "buyProductByNative",
	ActionTypeBuyByToken:      "buyProductByToken",
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "default"
}

// IsAdminAction admin actions change registry state
func (a ActionType) IsAdminAction() bool {
	switch a {
	case ActionTypeAddCurrency, ActionTypeRemoveCurrency, ActionTypeAddWhiteList, ActionTypeRemoveWhiteList:
		return true
	}

	return false
}

// ParseActionType parse action from its method name
func ParseActionType(name string) ActionType {
	for a, n := range actionNames {
		if n == name {
			return a
		}
	}

	return ActionTypeDefault
}
