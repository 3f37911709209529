package debrief

import (
	"fmt"
	"strings"
)

const systemPrompt = `Sei il direttore di un laboratorio di chimica che ha appena visto un giocatore superare un'escape room a tema tavola periodica. Scrivi in italiano, con tono ironico ma affettuoso.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficoltà: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Punteggio finale: %d su 100\n", in.Score)
	fmt.Fprintf(&b, "Tempo totale: %d secondi\n", in.Stats.TotalTime)
	fmt.Fprintf(&b, "Risposte errate: %d\n", in.Stats.WrongAttempts)

	b.WriteString("\nStanze:\n")
	for _, r := range in.Rooms {
		if len(r.Clues) == 0 {
			fmt.Fprintf(&b, "- %s: %s, nessun indizio\n", r.Name, r.Element)
			continue
		}
		types := make([]string, len(r.Clues))
		for i, t := range r.Clues {
			types[i] = string(t)
		}
		fmt.Fprintf(&b, "- %s: %s, indizi %s (costo %d)\n", r.Name, r.Element, strings.Join(types, ", "), r.Spent)
	}

	b.WriteString(`
Istruzioni:
1. Scrivi un titolo di 3-8 parole.
2. Scrivi 2-3 frasi di commento sulla partita: cita almeno un elemento indovinato e il modo in cui il giocatore ha usato gli indizi.
3. Non ripetere il punteggio come numero.`)

	return b.String()
}
