package profile

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mpwgo/mpw/engine"
	"github.com/mpwgo/mpw/mpwerr"
	"github.com/mpwgo/mpw/types"
)

const flatMagic = "# Master Password site export"

// recordFields is the number of tab-separated columns in a site record:
// lastUsed, uses, "type:algorithm:counter", loginName, loginGenerated,
// name, content. A single tab is the column separator so that an empty
// column (e.g. no login name) still occupies a position instead of being
// swallowed the way a run of spaces would be.
const recordFields = 7

// readFlatInfo decodes just the header of a flat-format blob.
func readFlatInfo(data []byte) (Info, error) {
	hdr, _, err := parseFlatHeader(data)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Format:    types.FormatFlat,
		Algorithm: hdr.algorithm,
		KeyID:     hdr.keyID,
		Date:      hdr.date,
		Redacted:  hdr.redacted,
	}, nil
}

type flatHeader struct {
	fullName    string
	keyID       string
	algorithm   engine.AlgorithmVersion
	defaultType types.ResultType
	redacted    bool
	date        time.Time
}

// parseFlatHeader reads the "# key: value" header block and returns the
// byte offset of the first record line. The V0 dialect omits the Algorithm
// and Default Type lines entirely, in which case V0 and Long are assumed
// respectively.
func parseFlatHeader(data []byte) (flatHeader, int, error) {
	if !bytes.HasPrefix(data, []byte(flatMagic)) {
		return flatHeader{}, 0, fmt.Errorf("profile: %w: missing flat file magic", mpwerr.Format)
	}
	hdr := flatHeader{
		algorithm:   engine.V0,
		defaultType: types.Long,
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	offset := 0
	for sc.Scan() {
		line := sc.Text()
		consumed := len(line) + 1 // + newline
		if !strings.HasPrefix(line, "#") {
			break
		}
		offset += consumed
		trimmed := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if trimmed == "" || trimmed == flatMagic[2:] {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Full Name":
			hdr.fullName = value
		case "Key ID":
			hdr.keyID = value
		case "Algorithm":
			n, err := strconv.Atoi(value)
			if err != nil {
				return flatHeader{}, 0, fmt.Errorf("profile: %w: bad Algorithm header %q", mpwerr.Format, value)
			}
			v, err := engine.ParseAlgorithmVersion(n)
			if err != nil {
				return flatHeader{}, 0, fmt.Errorf("profile: %w", err)
			}
			hdr.algorithm = v
		case "Default Type":
			n, err := strconv.Atoi(value)
			if err != nil {
				return flatHeader{}, 0, fmt.Errorf("profile: %w: bad Default Type header %q", mpwerr.Format, value)
			}
			hdr.defaultType = types.ResultType(n)
		case "Redacted":
			hdr.redacted = value == "true"
		case "Date":
			t, err := time.Parse(time.RFC3339, value)
			if err == nil {
				hdr.date = t
			}
		}
	}
	if err := sc.Err(); err != nil {
		return flatHeader{}, 0, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	return hdr, offset, nil
}

// decodeFlat parses a complete flat-format blob into a User. Stateful site
// content is left as the stored ciphertext; Read is responsible for
// decrypting it.
func decodeFlat(data []byte) (*User, error) {
	hdr, offset, err := parseFlatHeader(data)
	if err != nil {
		return nil, err
	}
	if hdr.fullName == "" || hdr.keyID == "" {
		return nil, fmt.Errorf("profile: %w: flat header missing Full Name or Key ID", mpwerr.Format)
	}

	u := &User{
		FullName:    hdr.fullName,
		KeyID:       hdr.keyID,
		Algorithm:   hdr.algorithm,
		DefaultType: hdr.defaultType,
		Redacted:    hdr.redacted,
		LastUsed:    hdr.date,
	}

	sc := bufio.NewScanner(bytes.NewReader(data[offset:]))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		site, err := decodeFlatRecord(line, hdr.algorithm)
		if err != nil {
			return nil, err
		}
		u.Sites = append(u.Sites, site)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("profile: %w: %v", mpwerr.Format, err)
	}
	return u, nil
}

func decodeFlatRecord(line string, fallbackAlgorithm engine.AlgorithmVersion) (Site, error) {
	fields := strings.SplitN(strings.TrimRight(line, "\n"), "\t", recordFields)
	for len(fields) < recordFields {
		fields = append(fields, "")
	}
	// fields[0]=lastUsed, [1]=uses, [2]=type:algorithm:counter,
	// [3]=loginName, [4]=loginGenerated, [5]=name, [6]=content

	lastUsed, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Site{}, fmt.Errorf("profile: %w: bad last-used timestamp %q", mpwerr.Format, fields[0])
	}
	uses, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return Site{}, fmt.Errorf("profile: %w: bad uses count %q", mpwerr.Format, fields[1])
	}

	typeAlgCounter := strings.Split(fields[2], ":")
	if len(typeAlgCounter) != 3 {
		return Site{}, fmt.Errorf("profile: %w: bad type:algorithm:counter field %q", mpwerr.Format, fields[2])
	}
	typeN, err1 := strconv.Atoi(typeAlgCounter[0])
	algN, err2 := strconv.Atoi(typeAlgCounter[1])
	counter, err3 := strconv.ParseUint(typeAlgCounter[2], 10, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return Site{}, fmt.Errorf("profile: %w: malformed type:algorithm:counter field %q", mpwerr.Format, fields[2])
	}
	algorithm, err := engine.ParseAlgorithmVersion(algN)
	if err != nil {
		algorithm = fallbackAlgorithm
	}

	return Site{
		Name:           fields[5],
		Type:           types.ResultType(typeN),
		Counter:        uint32(counter),
		Algorithm:      algorithm,
		LoginName:      fields[3],
		LoginGenerated: fields[4] == "1",
		Content:        fields[6],
		Uses:           uint32(uses),
		LastUsed:       lastUsed,
	}, nil
}

// encodeFlat renders u (already sealed by the caller) as a flat-format
// blob.
func encodeFlat(u *User) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintln(&b, flatMagic)
	fmt.Fprintln(&b, "#")
	fmt.Fprintf(&b, "# Full Name: %s\n", u.FullName)
	fmt.Fprintf(&b, "# Key ID: %s\n", u.KeyID)
	fmt.Fprintf(&b, "# Algorithm: %d\n", u.Algorithm)
	fmt.Fprintf(&b, "# Default Type: %d\n", u.DefaultType)
	fmt.Fprintf(&b, "# Redacted: %t\n", u.Redacted)
	fmt.Fprintf(&b, "# Date: %s\n", formatTime(u.LastUsed))
	fmt.Fprintln(&b, "##")

	for _, s := range u.Sites {
		loginGenerated := "0"
		if s.LoginGenerated {
			loginGenerated = "1"
		}
		fmt.Fprintf(&b, "%s\t%d\t%d:%d:%d\t%s\t%s\t%s\t%s\n",
			formatTime(s.LastUsed), s.Uses, s.Type, s.Algorithm, s.Counter,
			s.LoginName, loginGenerated, s.Name, s.Content)
	}
	return b.Bytes(), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Unix(0, 0).UTC()
	}
	return t.UTC().Format(time.RFC3339)
}
