package discovery

import (
	"fmt"
	"sort"
	"strings"
)

// TXTRecordMap represents TXT records as key-value pairs.
type TXTRecordMap map[string]string

// EncodeGatewayTXT creates the TXT records for a gateway.
func EncodeGatewayTXT(info *GatewayInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyAPIVersion: info.APIVersion,
	}

	if info.Build != "" {
		txt[TXTKeyBuild] = info.Build
	}
	if info.Endpoint != "" {
		txt[TXTKeyEndpoint] = info.Endpoint
	}
	if info.ReadOnly {
		txt[TXTKeyReadOnly] = "1"
	}

	return txt
}

// DecodeGatewayTXT parses gateway TXT records. Only the API version is
// required.
func DecodeGatewayTXT(txt TXTRecordMap) (*GatewayInfo, error) {
	info := &GatewayInfo{}

	var ok bool
	info.APIVersion, ok = txt[TXTKeyAPIVersion]
	if !ok || info.APIVersion == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyAPIVersion)
	}

	info.Build = txt[TXTKeyBuild]
	info.Endpoint = txt[TXTKeyEndpoint]

	switch ro := txt[TXTKeyReadOnly]; ro {
	case "", "0":
	case "1":
		info.ReadOnly = true
	default:
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidTXTRecord, TXTKeyReadOnly, ro)
	}

	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to sorted "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		k, v, found := strings.Cut(s, "=")
		if found {
			txt[k] = v
		} else if k != "" {
			// Key without value (boolean flag)
			txt[k] = ""
		}
	}
	return txt
}

// TXTRecordSize returns the wire size of the records: one length byte plus
// the "key=value" bytes per entry.
func TXTRecordSize(txt TXTRecordMap) int {
	size := 0
	for k, v := range txt {
		size += 1 + len(k) + 1 + len(v)
	}
	return size
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrMissingRequired)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}

// ServiceEntry is a raw browse result, independent of the mDNS library.
type ServiceEntry struct {
	Instance string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// ToGatewayService converts a ServiceEntry to GatewayService.
func (e *ServiceEntry) ToGatewayService() (*GatewayService, error) {
	info, err := DecodeGatewayTXT(StringsToTXTRecords(e.Text))
	if err != nil {
		return nil, err
	}

	return &GatewayService{
		InstanceName: e.Instance,
		Host:         e.Host,
		Port:         e.Port,
		Addresses:    e.Addrs,
		APIVersion:   info.APIVersion,
		Build:        info.Build,
		Endpoint:     info.Endpoint,
		ReadOnly:     info.ReadOnly,
	}, nil
}
