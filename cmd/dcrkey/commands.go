package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/bitfsorg/libdcr-go/bn"
	"github.com/bitfsorg/libdcr-go/ecdsa"
	"github.com/bitfsorg/libdcr-go/keys"
	"github.com/bitfsorg/libdcr-go/tx"
	"github.com/bitfsorg/libdcr-go/unit"
)

var (
	errMissingArgument  = errors.New("dcrkey: missing argument")
	errInvalidSignature = errors.New("dcrkey: signature does not verify")
)

func littleEndianFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "little-endian",
		Usage: "treat the digest as little-endian",
	}
}

func digestEndian(c *cli.Context) ecdsa.Endian {
	if c.Bool("little-endian") {
		return ecdsa.LittleEndian
	}
	return ecdsa.BigEndian
}

func hexFlag(c *cli.Context, name string) ([]byte, error) {
	b, err := hex.DecodeString(c.String(name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return b, nil
}

func firstArg(c *cli.Context, what string) (string, error) {
	if c.Args().Len() == 0 {
		return "", fmt.Errorf("%w: %s", errMissingArgument, what)
	}
	return c.Args().First(), nil
}

func generateCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a new private key",
		Action: func(c *cli.Context) error {
			key, err := keys.GeneratePrivateKey(e.net)
			if err != nil {
				return err
			}
			e.log.Debugf("generated key on %s", e.net)

			emit(c, "wif: %s", key.WIF())
			emit(c, "pubkey: %s", key.PublicKey())
			emit(c, "id: %x", key.PublicKey().ID())
			return nil
		},
	}
}

func inspectCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode a WIF private key",
		ArgsUsage: "<wif>",
		Action: func(c *cli.Context) error {
			wif, err := firstArg(c, "wif")
			if err != nil {
				return err
			}
			key, err := keys.PrivateKeyFromWIF(wif, e.registry)
			if err != nil {
				return err
			}

			emit(c, "network: %s", key.Network())
			emit(c, "scalar: %s", key)
			emit(c, "pubkey: %s", key.PublicKey())
			emit(c, "id: %x", key.PublicKey().ID())
			return nil
		},
	}
}

func signCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "sign",
		Usage: "Sign a 32-byte digest with a WIF private key",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "wif", Usage: "private key in wallet import format", Required: true},
			&cli.StringFlag{Name: "digest", Usage: "32-byte digest in hex", Required: true},
			&cli.StringFlag{Name: "extra", Usage: "optional 32 bytes of extra nonce entropy in hex"},
			littleEndianFlag(),
		},
		Action: func(c *cli.Context) error {
			key, err := keys.PrivateKeyFromWIF(c.String("wif"), e.registry)
			if err != nil {
				return err
			}
			digest, err := hexFlag(c, "digest")
			if err != nil {
				return err
			}
			var extra []byte
			if c.IsSet("extra") {
				if extra, err = hexFlag(c, "extra"); err != nil {
					return err
				}
			}

			sig, err := ecdsa.Sign(digest, key, digestEndian(c), extra)
			if err != nil {
				return err
			}
			e.log.Debugf("signed digest %x", digest)

			emit(c, "%s", sig)
			return nil
		},
	}
}

func verifyCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify a DER signature against a public key",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pubkey", Usage: "public key in hex", Required: true},
			&cli.StringFlag{Name: "digest", Usage: "32-byte digest in hex", Required: true},
			&cli.StringFlag{Name: "sig", Usage: "DER signature in hex", Required: true},
			littleEndianFlag(),
		},
		Action: func(c *cli.Context) error {
			pub, err := keys.PublicKeyFromHex(c.String("pubkey"), true, e.net)
			if err != nil {
				return err
			}
			digest, err := hexFlag(c, "digest")
			if err != nil {
				return err
			}
			sig, err := ecdsa.ParseHex(c.String("sig"), pub.Compressed())
			if err != nil {
				return err
			}

			if err := e.verifier.Check(digest, sig, pub, digestEndian(c)); err != nil {
				e.log.Debugf("verification failed: %v", err)
				emit(c, "invalid")
				return fmt.Errorf("%w: %w", errInvalidSignature, err)
			}
			emit(c, "valid")
			return nil
		},
	}
}

func scriptNumCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "scriptnum",
		Usage: "Encode or decode script numbers",
		Subcommands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Encode an integer (decimal, or hex with 0x) as a script number",
				ArgsUsage: "<n>",
				Action: func(c *cli.Context) error {
					s, err := firstArg(c, "number")
					if err != nil {
						return err
					}
					n, err := bn.FromString(s, 0)
					if err != nil {
						return err
					}
					emit(c, "%x", n.ScriptNum())
					return nil
				},
			},
			{
				Name:      "decode",
				Usage:     "Decode a hex script number",
				ArgsUsage: "<hex>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "minimal", Usage: "require minimal encoding"},
					&cli.IntFlag{Name: "max", Usage: "maximum encoded length (defaults to the configured value)"},
				},
				Action: func(c *cli.Context) error {
					s, err := firstArg(c, "hex")
					if err != nil {
						return err
					}
					b, err := hex.DecodeString(s)
					if err != nil {
						return err
					}
					maxLen := e.cfg.ScriptNumMaxLen
					if c.IsSet("max") {
						maxLen = c.Int("max")
					}
					n, err := bn.FromScriptNum(b, c.Bool("minimal"), maxLen)
					if err != nil {
						return err
					}
					emit(c, "%s", n)
					return nil
				},
			},
		},
	}
}

func outputCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "output",
		Usage: "Encode or decode transaction outputs",
		Subcommands: []*cli.Command{
			{
				Name:  "encode",
				Usage: "Serialize an output",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "atoms", Usage: "value in atoms", Required: true},
					&cli.StringFlag{Name: "script", Usage: "locking script as hex or ASM"},
				},
				Action: func(c *cli.Context) error {
					o, err := tx.OutputFromRecord(tx.OutputRecord{
						Atoms:  c.Int64("atoms"),
						Script: c.String("script"),
					})
					if err != nil {
						return err
					}
					if !o.HasValidScript() {
						e.log.Warnf("locking script %s does not parse", o.ScriptHex())
					}
					emit(c, "%x", o.Bytes())
					return nil
				},
			},
			{
				Name:      "decode",
				Usage:     "Deserialize an output",
				ArgsUsage: "<hex>",
				Action: func(c *cli.Context) error {
					s, err := firstArg(c, "hex")
					if err != nil {
						return err
					}
					b, err := hex.DecodeString(s)
					if err != nil {
						return err
					}
					o, err := tx.OutputFromBytes(b)
					if err != nil {
						return err
					}
					data, err := o.MarshalJSON()
					if err != nil {
						return err
					}
					emit(c, "%s", data)
					emit(c, "version: %d", o.Version())
					return nil
				},
			},
		},
	}
}

func convertCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert an amount between denominations, or from fiat with --rate",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "amount", Usage: "amount to convert", Required: true},
			&cli.StringFlag{Name: "from", Usage: "source unit", Value: string(unit.DCR)},
			&cli.StringFlag{Name: "to", Usage: "target unit", Value: string(unit.Atoms)},
			&cli.Float64Flag{Name: "rate", Usage: "fiat per DCR; when set the amount is fiat"},
		},
		Action: func(c *cli.Context) error {
			to, err := unit.ParseCode(c.String("to"))
			if err != nil {
				return err
			}

			var u unit.Unit
			if c.IsSet("rate") {
				u, err = unit.FromFiat(c.Float64("amount"), c.Float64("rate"))
			} else {
				var from unit.Code
				if from, err = unit.ParseCode(c.String("from")); err == nil {
					u, err = unit.New(c.Float64("amount"), from)
				}
			}
			if err != nil {
				return err
			}

			v, err := u.To(to)
			if err != nil {
				return err
			}
			e.log.Debugf("converted to %s", u)
			emit(c, "%s", strconv.FormatFloat(v, 'f', -1, 64))
			return nil
		},
	}
}
