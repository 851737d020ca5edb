package types

// Client -> Server
// Draft:
//   game_id: number
//
// SetSnake:
//   snake: boolean
//
// MoveOrder:
//   index: number
//   dir: -1 | 1
//
// PromoteOrder:
//   index: number
//
// ResetOrder: {}
//
// ShuffleOrder: {}
//
// AddGame:
//   date: string (MM/DD/YYYY)
//   time: string (e.g. "7:30 PM")
//   day: "MON" | "TUE" | "WED" | "THU" | "FRI" | "SAT" | "SUN"
//   opponent: string
//   tier: string
//   price: number
//
// RemoveGame:
//   game_id: number

// Server -> Client
// StateSnapshot:
//   version: number
//   state: see snapshot.go
//
// Error:
//   code: "NotYourTurn" | "AlreadyTaken" | "ValidationError" | "StoreError"
//   error: string
