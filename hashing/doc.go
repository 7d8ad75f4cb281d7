// Package hashing produces and verifies crypt(3)-format password hashes.
//
// # Architecture
//
// Each supported format has a [SaltShaker]: a small strategy object that
// generates a random salt and formats it, together with the format's
// parameters, into the setting string understood by crypt(3). Six shakers
// ship with this package:
//
//   - [StdDESShaker]: traditional two-character DES salt ("rl")
//   - [ExtDESShaker]: BSDi extended DES ("_J9..rasm")
//   - [MD5Shaker]: MD5-crypt ("$1$rasmusle$")
//   - [SHAShaker]: SHA-256-crypt and SHA-512-crypt ("$5$rounds=5000$salt$")
//   - [BlowfishShaker]: bcrypt ("$2a$07$<22 chars>$")
//
// A [Password] holds one shaker and hashes with it. The shaker can be swapped
// at runtime with [Password.SetSaltShaker]; concurrent [Password.Hash] calls
// see either the old or the new shaker, never a mix.
//
// [Verify] needs no shaker. It detects the format of a stored hash with
// [ParseHash], rebuilds the matching shaker from the parameters embedded in the
// hash and recomputes it with the embedded salt.
//
// # Quick start
//
//	shaker, _ := hashing.NewSHA512Shaker(hashing.DefaultSHAOptions())
//	p, _ := hashing.NewPassword(shaker)
//
//	hash, _ := p.Hash("my-secret-password")
//	ok := hashing.Verify("my-secret-password", hash) // true
//
// # Migration
//
// Call [Password.NeedsRehash] after every successful login. It reports true
// when the stored hash uses another format or other parameters than the
// held shaker:
//
//	if hashing.Verify(password, stored) {
//	    if needs, _ := p.NeedsRehash(stored); needs {
//	        fresh, _ := p.Hash(password)
//	        persist(userID, fresh)
//	    }
//	}
//
// # Security notes
//
// DES, extended DES and MD5-crypt exist for interoperability with legacy
// password files. New hashes should use bcrypt (cost 12 or more) or
// SHA-512-crypt.
package hashing
