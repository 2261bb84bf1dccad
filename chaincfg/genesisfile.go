package chaincfg

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
)

var (
	ErrInvalidGenesisFile = errors.New("invalid genesis file")
	ErrUnknownGenesisKeys = errors.New("unknown keys in genesis file")
)

// Zones BurntSushi/toml assigns to local dates and datetimes.  Their offset is
// the host's, so such values mean a different instant on every machine.
var tomlLocalZones = map[string]bool{
	"datetime-local": true,
	"date-local":     true,
	"time-local":     true,
}

// genesisFile is the on-disk TOML description of a genesis block.
//
//	network = "regtest"
//	version = 4
//	time = 2025-10-01T00:00:00Z
//	bits = 0x207fffff
//
//	[[funds]]
//	amount = 1000000000000
//	pub_key_hash = "3d17776e24696a7e4986a8af75591e487d1cd5c4"
type genesisFile struct {
	Network    string      `toml:"network" validate:"required,oneof=main test regtest"`
	Version    int32       `toml:"version"`
	Time       time.Time   `toml:"time" validate:"required"`
	Bits       uint32      `toml:"bits" validate:"required_without=Difficulty,excluded_with=Difficulty"`
	Difficulty string      `toml:"difficulty" validate:"omitempty,hexadecimal"`
	Funds      []fundEntry `toml:"funds" validate:"dive"`
}

type fundEntry struct {
	Amount     int64  `toml:"amount" validate:"gt=0"`
	PubKeyHash string `toml:"pub_key_hash" validate:"required_without_all=ScriptHash Address,excluded_with=ScriptHash Address"`
	ScriptHash string `toml:"script_hash" validate:"required_without_all=PubKeyHash Address,excluded_with=PubKeyHash Address"`
	Address    string `toml:"address" validate:"required_without_all=PubKeyHash ScriptHash,excluded_with=PubKeyHash ScriptHash"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadGenesisFile reads a TOML genesis description and returns the parameters
// of the network it names with the genesis replaced by the file's contents.
func LoadGenesisFile(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening genesis file: %w", err)
	}
	defer f.Close()

	return DecodeGenesis(f)
}

// DecodeGenesis decodes a TOML genesis description from r.  See
// LoadGenesisFile.
func DecodeGenesis(r io.Reader) (*Params, error) {
	var gf genesisFile
	md, err := toml.NewDecoder(r).Decode(&gf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenesisFile, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownGenesisKeys, strings.Join(keys, ", "))
	}

	if err := validate.Struct(gf); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGenesisFile, describeValidation(err))
	}
	if tomlLocalZones[gf.Time.Location().String()] {
		return nil, fmt.Errorf("%w: time must carry an offset or Z", ErrInvalidGenesisFile)
	}

	params, err := ParamsForNetwork(gf.Network)
	if err != nil {
		return nil, err
	}

	spec := GenesisSpec{
		Version: gf.Version,
		Time:    gf.Time.UTC(),
		Bits:    gf.Bits,
		Funds:   make([]FundSpec, 0, len(gf.Funds)),
	}
	if gf.Difficulty != "" {
		if spec.Difficulty, err = parseDifficulty(gf.Difficulty); err != nil {
			return nil, err
		}
	}
	for _, fund := range gf.Funds {
		spec.Funds = append(spec.Funds, FundSpec(fund))
	}
	params.Genesis = spec

	if _, err := params.InitialSupply(); err != nil {
		return nil, err
	}
	return params, nil
}

func parseDifficulty(s string) (*uint256.Int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%w: difficulty %q is not hex", ErrInvalidGenesisFile, s)
	}
	target, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("%w: difficulty exceeds 256 bits", ErrInvalidGenesisFile)
	}
	return target, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
