// Package unixcrypt is a pure-Go rendition of the platform crypt(3) function.
//
// [Crypt] combines a password with a fully formatted setting string and
// returns the complete hash, dispatching on the setting's prefix the same way
// glibc, libxcrypt and PHP's crypt() do:
//
//	$2a$ $2b$ $2y$ $2x$   bcrypt (EksBlowfish, golang.org/x/crypto/blowfish)
//	$1$                   MD5-crypt
//	$5$                   SHA-256-crypt
//	$6$                   SHA-512-crypt
//	_                     extended (BSDi) DES
//	anything else         traditional DES with a two-character salt
//
// Only the parts of the setting the algorithm consumes are read, so a full
// hash may be passed as the setting to re-derive it:
//
//	h, _ := unixcrypt.Crypt("rasmuslerdorf", "$1$rasmusle$")
//	again, _ := unixcrypt.Crypt("rasmuslerdorf", h) // again == h
//
// Crypt is deterministic and safe for concurrent use.
package unixcrypt
