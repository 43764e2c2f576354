package app

// MinHumansToStartGame is the number of human seats required before the
// owner may start; the remaining seats are filled with bots.
const MinHumansToStartGame = 1
