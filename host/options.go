package host

// Options configure the provider host process.
type Options struct {
	Transport string `short:"T" long:"transport" description:"channel transport" choice:"stdio" choice:"sse" choice:"streamable" choice:"ws" default:"stdio"`
	Addr      string `short:"a" long:"addr" description:"listen address for network transports" default:"127.0.0.1:5000"`
	WSURI     string `short:"w" long:"ws-uri" description:"websocket mount path" default:"/ws"`
}
