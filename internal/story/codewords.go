package story

// Codeword is a permanent narrative flag. Codewords are only ever gained,
// never removed during normal play.
type Codeword string
