package hashing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

// Format identifies one of the supported crypt(3) hash formats.
type Format int

const (
	// FormatStdDES is traditional 13-character DES crypt.
	FormatStdDES Format = iota
	// FormatExtDES is BSDi extended DES ("_").
	FormatExtDES
	// FormatMD5 is MD5-crypt ("$1$").
	FormatMD5
	// FormatSHA256 is SHA-256-crypt ("$5$").
	FormatSHA256
	// FormatSHA512 is SHA-512-crypt ("$6$").
	FormatSHA512
	// FormatBlowfish is bcrypt ("$2a$", "$2b$", "$2x$", "$2y$").
	FormatBlowfish

	formatCount
)

var formatNames = [formatCount]string{
	FormatStdDES:   "std_des",
	FormatExtDES:   "ext_des",
	FormatMD5:      "md5",
	FormatSHA256:   "sha256",
	FormatSHA512:   "sha512",
	FormatBlowfish: "blowfish",
}

// String returns the lower-case name of f, e.g. "sha512".
func (f Format) String() string {
	if f < 0 || f >= formatCount {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat is the inverse of [Format.String].
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrInvalidOption, name)
}

// ParsedHash is a hash string split into its parts.
type ParsedHash struct {
	Format Format

	// Variant is the bcrypt minor version ("2a", "2b", "2x", "2y"); empty
	// for other formats.
	Variant BlowfishVariant

	// Rounds is the explicit iteration count of ExtDES and SHA-crypt hashes.
	// Zero means a SHA-crypt hash without a "rounds=" directive.
	Rounds int

	// Cost is the bcrypt work factor; zero for other formats.
	Cost int

	// Salt is the raw salt fragment embedded in the hash.
	Salt string

	// Setting is what the matching shaker's Encode returns for Salt.
	Setting string

	// Digest is the encoded hash output following the salt.
	Digest string
}

// SaltShaker returns a shaker configured with the parameters embedded in the
// hash, so that Encode(p.Salt) returns p.Setting.
func (p ParsedHash) SaltShaker() (SaltShaker, error) {
	switch p.Format {
	case FormatStdDES:
		return NewStdDESShaker(), nil
	case FormatExtDES:
		s, err := NewExtDESShaker(ExtDESOptions{Rounds: p.Rounds})
		if err != nil {
			return nil, err
		}
		return s, nil
	case FormatMD5:
		return NewMD5Shaker(), nil
	case FormatSHA256, FormatSHA512:
		s, err := newSHAShaker(p.Format, SHAOptions{Rounds: p.Rounds})
		if err != nil {
			return nil, err
		}
		return s, nil
	case FormatBlowfish:
		if p.Cost < unixcrypt.BcryptMinCost || p.Cost > unixcrypt.BcryptMaxCost {
			return nil, fmt.Errorf("%w: bcrypt cost %d", ErrInvalidOption, p.Cost)
		}
		// Built directly: 2x is valid here but not in NewBlowfishShaker.
		return &BlowfishShaker{cost: p.Cost, variant: p.Variant}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, p.Format)
	}
}

// DetectFormat classifies hash by its prefix, most specific first. It does not
// check the rest of the grammar; use [ParseHash] for that.
func DetectFormat(hash string) (Format, bool) {
	switch {
	case len(hash) >= 4 && hash[0] == '$' && hash[1] == '2' && hash[3] == '$' &&
		strings.IndexByte("abxy", hash[2]) >= 0:
		return FormatBlowfish, true
	case strings.HasPrefix(hash, unixcrypt.PrefixMD5):
		return FormatMD5, true
	case strings.HasPrefix(hash, unixcrypt.PrefixSHA256):
		return FormatSHA256, true
	case strings.HasPrefix(hash, unixcrypt.PrefixSHA512):
		return FormatSHA512, true
	case strings.HasPrefix(hash, unixcrypt.PrefixExtDES):
		return FormatExtDES, true
	case len(hash) == unixcrypt.DESSaltLen+unixcrypt.DESDigestLen && unixcrypt.IsValid(hash):
		return FormatStdDES, true
	default:
		return 0, false
	}
}

var parsers = [formatCount]func(string) (ParsedHash, error){
	FormatStdDES:   parseStdDES,
	FormatExtDES:   parseExtDES,
	FormatMD5:      parseMD5,
	FormatSHA256:   parseSHA,
	FormatSHA512:   parseSHA,
	FormatBlowfish: parseBlowfish,
}

// ParseHash detects the format of hash and splits it into its parts. It
// returns [ErrUnrecognizedFormat] when no format matches and
// [ErrInvalidHash] when the detected format's grammar is violated. Errors
// never quote the hash.
func ParseHash(hash string) (ParsedHash, error) {
	f, ok := DetectFormat(hash)
	if !ok {
		return ParsedHash{}, ErrUnrecognizedFormat
	}
	return parsers[f](hash)
}

func invalidHash(f Format, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidHash, f, reason)
}

func parseStdDES(hash string) (ParsedHash, error) {
	salt := hash[:unixcrypt.DESSaltLen]
	return ParsedHash{
		Format:  FormatStdDES,
		Salt:    salt,
		Setting: salt,
		Digest:  hash[unixcrypt.DESSaltLen:],
	}, nil
}

func parseExtDES(hash string) (ParsedHash, error) {
	if len(hash) != unixcrypt.ExtDESSettingLen+unixcrypt.DESDigestLen {
		return ParsedHash{}, invalidHash(FormatExtDES, "wrong length")
	}
	if !unixcrypt.IsValid(hash[1:]) {
		return ParsedHash{}, invalidHash(FormatExtDES, "character outside the crypt alphabet")
	}
	count, _ := unixcrypt.DecodeInt(hash[1:5])
	if count == 0 {
		return ParsedHash{}, invalidHash(FormatExtDES, "zero rounds")
	}
	return ParsedHash{
		Format:  FormatExtDES,
		Rounds:  int(count),
		Salt:    hash[5:unixcrypt.ExtDESSettingLen],
		Setting: hash[:unixcrypt.ExtDESSettingLen],
		Digest:  hash[unixcrypt.ExtDESSettingLen:],
	}, nil
}

func parseMD5(hash string) (ParsedHash, error) {
	salt, digest, err := splitSaltDigest(FormatMD5, hash[len(unixcrypt.PrefixMD5):],
		unixcrypt.MD5SaltMaxLen, unixcrypt.MD5DigestLen)
	if err != nil {
		return ParsedHash{}, err
	}
	return ParsedHash{
		Format:  FormatMD5,
		Salt:    salt,
		Setting: unixcrypt.PrefixMD5 + salt + "$",
		Digest:  digest,
	}, nil
}

func parseSHA(hash string) (ParsedHash, error) {
	f, prefix, digestLen := FormatSHA256, unixcrypt.PrefixSHA256, unixcrypt.SHA256DigestLen
	if strings.HasPrefix(hash, unixcrypt.PrefixSHA512) {
		f, prefix, digestLen = FormatSHA512, unixcrypt.PrefixSHA512, unixcrypt.SHA512DigestLen
	}

	rest := hash[len(prefix):]
	setting := prefix
	var rounds int
	if strings.HasPrefix(rest, unixcrypt.RoundsPrefix) {
		end := strings.IndexByte(rest, '$')
		if end < 0 {
			return ParsedHash{}, invalidHash(f, "unterminated rounds directive")
		}
		n, err := unixcrypt.ParseRounds(rest[len(unixcrypt.RoundsPrefix):end])
		if err != nil {
			return ParsedHash{}, invalidHash(f, "rounds out of range")
		}
		rounds = n
		setting += unixcrypt.RoundsPrefix + strconv.Itoa(n) + "$"
		rest = rest[end+1:]
	}

	salt, digest, err := splitSaltDigest(f, rest, unixcrypt.SHASaltMaxLen, digestLen)
	if err != nil {
		return ParsedHash{}, err
	}
	return ParsedHash{
		Format:  f,
		Rounds:  rounds,
		Salt:    salt,
		Setting: setting + salt + "$",
		Digest:  digest,
	}, nil
}

// splitSaltDigest splits "<salt>$<digest>" and checks both parts. The salt
// may be empty.
func splitSaltDigest(f Format, s string, maxSalt, digestLen int) (salt, digest string, err error) {
	i := strings.IndexByte(s, '$')
	if i < 0 {
		return "", "", invalidHash(f, "missing salt terminator")
	}
	salt, digest = s[:i], s[i+1:]
	if len(salt) > maxSalt || (salt != "" && !unixcrypt.IsValid(salt)) {
		return "", "", invalidHash(f, "malformed salt")
	}
	if len(digest) != digestLen || !unixcrypt.IsValid(digest) {
		return "", "", invalidHash(f, "malformed digest")
	}
	return salt, digest, nil
}

func parseBlowfish(hash string) (ParsedHash, error) {
	const saltEnd = 7 + unixcrypt.BcryptSaltLen
	if len(hash) != saltEnd+unixcrypt.BcryptDigestLen || hash[6] != '$' {
		return ParsedHash{}, invalidHash(FormatBlowfish, "wrong length")
	}
	c1, c2 := hash[4], hash[5]
	if c1 < '0' || c1 > '9' || c2 < '0' || c2 > '9' {
		return ParsedHash{}, invalidHash(FormatBlowfish, "cost is not two digits")
	}
	cost := int(c1-'0')*10 + int(c2-'0')
	if cost < unixcrypt.BcryptMinCost || cost > unixcrypt.BcryptMaxCost {
		return ParsedHash{}, invalidHash(FormatBlowfish, "cost out of range")
	}
	if !unixcrypt.IsValid(hash[7:]) {
		return ParsedHash{}, invalidHash(FormatBlowfish, "character outside the bcrypt alphabet")
	}

	salt := hash[7:saltEnd]
	canonical, err := unixcrypt.NormalizeBcryptSalt(salt)
	if err != nil {
		return ParsedHash{}, invalidHash(FormatBlowfish, "malformed salt")
	}
	return ParsedHash{
		Format:  FormatBlowfish,
		Variant: BlowfishVariant(hash[1:3]),
		Cost:    cost,
		Salt:    salt,
		Setting: hash[:7] + canonical + "$",
		Digest:  hash[saltEnd:],
	}, nil
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Format is the crypt format that produced the hash.
	Format Format

	// Params holds format-specific parameters extracted from the hash string.
	//
	// For ExtDES, SHA256 and SHA512:
	//   "rounds" → int (the effective count, 5000 for implicit SHA rounds)
	//
	// For Blowfish:
	//   "cost"    → int
	//   "variant" → string ("2a", "2b", "2x", "2y")
	//
	// StdDES and MD5 have no parameters.
	Params map[string]any
}

// Info extracts the format and parameters of hash without verifying it.
// Useful for auditing, migration tooling, or logging.
func Info(hash string) (HashInfo, error) {
	p, err := ParseHash(hash)
	if err != nil {
		return HashInfo{}, err
	}
	info := HashInfo{Format: p.Format, Params: map[string]any{}}
	switch p.Format {
	case FormatExtDES:
		info.Params["rounds"] = p.Rounds
	case FormatSHA256, FormatSHA512:
		rounds := p.Rounds
		if rounds == 0 {
			rounds = DefaultSHARounds
		}
		info.Params["rounds"] = rounds
	case FormatBlowfish:
		info.Params["cost"] = p.Cost
		info.Params["variant"] = string(p.Variant)
	}
	return info, nil
}
