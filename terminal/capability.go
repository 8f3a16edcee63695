package terminal

import (
	"time"

	"github.com/lixenwraith/termframe/ansi"
)

// CapabilityKind discriminates the two device-attributes response
// shapes.
type CapabilityKind uint8

const (
	// CapSpecific is the VT100-style response: a terminal type plus a
	// service parameter.
	CapSpecific CapabilityKind = iota
	// CapCompatible is the VT220+ response: a compatibility family
	// plus a feature set.
	CapCompatible
)

// Capabilities is a parsed primary device-attributes report.
type Capabilities struct {
	Kind CapabilityKind

	// CapSpecific
	Type    int
	Service int

	// CapCompatible
	Family   int
	Features []int
}

// UnknownCapabilities is the timeout fallback: a bare VT101.
func UnknownCapabilities() Capabilities {
	return Capabilities{Kind: CapSpecific, Type: 1, Service: 0}
}

// DefaultCapabilityTimeout bounds how long a capability query waits
// for the terminal's response.
const DefaultCapabilityTimeout = 250 * time.Millisecond

// translateDA converts a parsed DA response. Compatibility families
// report 60+ in the first parameter (62 = VT220, 63 = VT320, ...);
// anything lower is a VT100-style type/service pair.
func translateDA(d ansi.DeviceAttributes) Capabilities {
	params := d.Params
	if len(params) == 0 {
		return UnknownCapabilities()
	}
	if params[0] >= 60 {
		features := make([]int, len(params)-1)
		copy(features, params[1:])
		return Capabilities{Kind: CapCompatible, Family: params[0], Features: features}
	}
	c := Capabilities{Kind: CapSpecific, Type: params[0]}
	if len(params) > 1 {
		c.Service = params[1]
	}
	return c
}

// QueryCapabilities emits a primary device-attributes request and
// waits for the response on the event stream, returning unknown
// capabilities after the timeout. Intended to run during
// initialisation; non-response events arriving while waiting are
// discarded.
func QueryCapabilities(dev Device, events <-chan Event, enc ansi.Encoding, timeout time.Duration) Capabilities {
	if timeout <= 0 {
		timeout = DefaultCapabilityTimeout
	}

	dev.Write(ansi.Encode(ansi.DeviceAttributes{Class: ansi.DAPrimary}, enc))

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return UnknownCapabilities()
			}
			if ev.Type == EventResponse {
				return ev.Caps
			}
		case <-deadline.C:
			return UnknownCapabilities()
		}
	}
}
