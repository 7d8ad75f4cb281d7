package hashing_test

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/hasbyte1/go-crypt-utils/hashing"
)

// Example_sha512 demonstrates the recommended setup for new hashes.
func Example_sha512() {
	shaker, err := hashing.NewSHA512Shaker(hashing.DefaultSHAOptions())
	if err != nil {
		log.Fatal(err)
	}
	p, err := hashing.NewPassword(shaker)
	if err != nil {
		log.Fatal(err)
	}

	hash, err := p.Hash("my-secret-password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(hashing.Verify("my-secret-password", hash))
	// Output: true
}

// Example_hashWithSalt shows that a fixed salt yields the same hash as the
// platform's crypt(3).
func Example_hashWithSalt() {
	shaker, _ := hashing.NewBlowfishShaker(hashing.BlowfishOptions{Cost: 7})
	p, _ := hashing.NewPassword(shaker)

	hash, err := p.HashWithSalt("rasmuslerdorf", "usesomesillystringforsalt")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
	// Output: $2a$07$usesomesillystringfore2uDLvp1Ii2e./U9C8sBjqp8I90dH6hi
}

// Example_verifyLegacy verifies hashes from an old password file without
// knowing which algorithm produced them.
func Example_verifyLegacy() {
	for _, stored := range []string{
		"rl.3StKT.4T8M",
		"_J9..rasmBYk8r9AiWNc",
		"$1$rasmusle$rISCgZzpwk3UhDidwXvin0",
		"incorrecthash",
	} {
		fmt.Println(hashing.Verify("rasmuslerdorf", stored))
	}
	// Output:
	// true
	// true
	// true
	// false
}

// Example_swapSaltShaker replaces the shaker at runtime, for instance after a
// configuration change.
func Example_swapSaltShaker() {
	p, _ := hashing.NewPassword(hashing.NewMD5Shaker())
	fmt.Println(p.SaltShaker().Format())

	shaker, _ := hashing.NewBlowfishShaker(hashing.DefaultBlowfishOptions())
	_ = p.SetSaltShaker(shaker)
	fmt.Println(p.SaltShaker().Format())
	// Output:
	// md5
	// blowfish
}

// Example_needsRehash illustrates the algorithm upgrade pattern: detect when a
// stored hash uses a weaker or different format, then re-hash on next
// successful login.
func Example_needsRehash() {
	shaker, _ := hashing.NewSHA512Shaker(hashing.DefaultSHAOptions())
	p, _ := hashing.NewPassword(shaker)

	legacy := "$1$rasmusle$rISCgZzpwk3UhDidwXvin0"
	if !hashing.Verify("rasmuslerdorf", legacy) {
		log.Fatal("login failed")
	}

	if needs, _ := p.NeedsRehash(legacy); needs {
		fresh, _ := p.Hash("rasmuslerdorf")
		_ = fresh // persist fresh to database here
		fmt.Println("password re-hashed with sha512")
	}
	// Output: password re-hashed with sha512
}

// Example_info shows how to inspect the parameters embedded in a hash.
func Example_info() {
	info, err := hashing.Info("$2y$07$usesomesillystringfore2uDLvp1Ii2e./U9C8sBjqp8I90dH6hi")
	if err != nil {
		log.Fatal(err)
	}

	out, _ := json.Marshal(map[string]any{
		"format":  info.Format.String(),
		"cost":    info.Params["cost"],
		"variant": info.Params["variant"],
	})
	fmt.Println(string(out))
	// Output: {"cost":7,"format":"blowfish","variant":"2y"}
}

// Example_detectFormat demonstrates auto-detecting which algorithm produced a
// hash.
func Example_detectFormat() {
	f, ok := hashing.DetectFormat("$5$rounds=5000$usesomesillystri$KqJWpanXZHKq2BOB43TSaYhEWsQ1Lr5QNyPCDH/Tp.6")
	fmt.Println(f, ok)
	// Output: sha256 true
}
