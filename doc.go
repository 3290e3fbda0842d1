/*

Package argon implements the Argon2 memory-hard password hashing and key
derivation function as specified in RFC 9106

	https://www.rfc-editor.org/rfc/rfc9106.html

Argon2 comes in three flavors:

Argon2d uses data-dependant memory access, making it the strongest against
time-memory trade-offs but not suitable for hashing secrets on hosts where
an attacker can observe cache timing.

Argon2i uses data-independant memory access, making it suitable for hashing
secret information such as passwords.

Argon2id uses data-independant access for the first half of the first pass
and data-dependant access afterwards. It is the recommended default.

Both protocol versions, 0x10 and 0x13, are supported.

Hash and Verify work on raw tags; HashEncoded and VerifyEncoded work on
the portable string form

	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<tag>

Hasher and Verifier wrap both with random salts, secret keys, associated
data, logging and metrics.

*/
package argon
