package schema

const (
	MethodInitialize  = "initialize"
	MethodGetMessages = "getMessages"
	MethodClose       = "close"

	MethodExtensionPointCallback = "extensionPointCallback"
)
