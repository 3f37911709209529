package elements

import "github.com/abhisek/periodica/internal/game"

// catalog lists every playable element ordered by atomic number.
var catalog = []game.Element{
	{Name: "Idrogeno", Symbol: "H", AtomicNumber: 1},
	{Name: "Elio", Symbol: "He", AtomicNumber: 2},
	{Name: "Litio", Symbol: "Li", AtomicNumber: 3},
	{Name: "Berillio", Symbol: "Be", AtomicNumber: 4},
	{Name: "Boro", Symbol: "B", AtomicNumber: 5},
	{Name: "Carbonio", Symbol: "C", AtomicNumber: 6},
	{Name: "Azoto", Symbol: "N", AtomicNumber: 7},
	{Name: "Ossigeno", Symbol: "O", AtomicNumber: 8},
	{Name: "Fluoro", Symbol: "F", AtomicNumber: 9},
	{Name: "Neon", Symbol: "Ne", AtomicNumber: 10},
	{Name: "Sodio", Symbol: "Na", AtomicNumber: 11},
	{Name: "Magnesio", Symbol: "Mg", AtomicNumber: 12},
	{Name: "Alluminio", Symbol: "Al", AtomicNumber: 13},
	{Name: "Silicio", Symbol: "Si", AtomicNumber: 14},
	{Name: "Fosforo", Symbol: "P", AtomicNumber: 15},
	{Name: "Zolfo", Symbol: "S", AtomicNumber: 16},
	{Name: "Cloro", Symbol: "Cl", AtomicNumber: 17},
	{Name: "Argon", Symbol: "Ar", AtomicNumber: 18},
	{Name: "Potassio", Symbol: "K", AtomicNumber: 19},
	{Name: "Calcio", Symbol: "Ca", AtomicNumber: 20},
	{Name: "Scandio", Symbol: "Sc", AtomicNumber: 21},
	{Name: "Titanio", Symbol: "Ti", AtomicNumber: 22},
	{Name: "Vanadio", Symbol: "V", AtomicNumber: 23},
	{Name: "Cromo", Symbol: "Cr", AtomicNumber: 24},
	{Name: "Manganese", Symbol: "Mn", AtomicNumber: 25},
	{Name: "Ferro", Symbol: "Fe", AtomicNumber: 26},
	{Name: "Cobalto", Symbol: "Co", AtomicNumber: 27},
	{Name: "Nichel", Symbol: "Ni", AtomicNumber: 28},
	{Name: "Rame", Symbol: "Cu", AtomicNumber: 29},
	{Name: "Zinco", Symbol: "Zn", AtomicNumber: 30},
	{Name: "Gallio", Symbol: "Ga", AtomicNumber: 31},
	{Name: "Germanio", Symbol: "Ge", AtomicNumber: 32},
	{Name: "Arsenico", Symbol: "As", AtomicNumber: 33},
	{Name: "Selenio", Symbol: "Se", AtomicNumber: 34},
	{Name: "Bromo", Symbol: "Br", AtomicNumber: 35},
	{Name: "Kripton", Symbol: "Kr", AtomicNumber: 36},
	{Name: "Rubidio", Symbol: "Rb", AtomicNumber: 37},
	{Name: "Stronzio", Symbol: "Sr", AtomicNumber: 38},
	{Name: "Ittrio", Symbol: "Y", AtomicNumber: 39},
	{Name: "Zirconio", Symbol: "Zr", AtomicNumber: 40},
	{Name: "Niobio", Symbol: "Nb", AtomicNumber: 41},
	{Name: "Molibdeno", Symbol: "Mo", AtomicNumber: 42},
	{Name: "Tecnezio", Symbol: "Tc", AtomicNumber: 43},
	{Name: "Rutenio", Symbol: "Ru", AtomicNumber: 44},
	{Name: "Rodio", Symbol: "Rh", AtomicNumber: 45},
	{Name: "Palladio", Symbol: "Pd", AtomicNumber: 46},
	{Name: "Argento", Symbol: "Ag", AtomicNumber: 47},
	{Name: "Cadmio", Symbol: "Cd", AtomicNumber: 48},
	{Name: "Indio", Symbol: "In", AtomicNumber: 49},
	{Name: "Stagno", Symbol: "Sn", AtomicNumber: 50},
	{Name: "Antimonio", Symbol: "Sb", AtomicNumber: 51},
	{Name: "Tellurio", Symbol: "Te", AtomicNumber: 52},
	{Name: "Iodio", Symbol: "I", AtomicNumber: 53},
	{Name: "Xeno", Symbol: "Xe", AtomicNumber: 54},
	{Name: "Cesio", Symbol: "Cs", AtomicNumber: 55},
	{Name: "Bario", Symbol: "Ba", AtomicNumber: 56},
	{Name: "Lantanio", Symbol: "La", AtomicNumber: 57},
	{Name: "Cerio", Symbol: "Ce", AtomicNumber: 58},
	{Name: "Praseodimio", Symbol: "Pr", AtomicNumber: 59},
	{Name: "Neodimio", Symbol: "Nd", AtomicNumber: 60},
	{Name: "Promezio", Symbol: "Pm", AtomicNumber: 61},
	{Name: "Samario", Symbol: "Sm", AtomicNumber: 62},
	{Name: "Europio", Symbol: "Eu", AtomicNumber: 63},
	{Name: "Gadolinio", Symbol: "Gd", AtomicNumber: 64},
	{Name: "Terbio", Symbol: "Tb", AtomicNumber: 65},
	{Name: "Disprosio", Symbol: "Dy", AtomicNumber: 66},
	{Name: "Olmio", Symbol: "Ho", AtomicNumber: 67},
	{Name: "Erbio", Symbol: "Er", AtomicNumber: 68},
	{Name: "Tulio", Symbol: "Tm", AtomicNumber: 69},
	{Name: "Itterbio", Symbol: "Yb", AtomicNumber: 70},
	{Name: "Lutezio", Symbol: "Lu", AtomicNumber: 71},
	{Name: "Afnio", Symbol: "Hf", AtomicNumber: 72},
	{Name: "Tantalio", Symbol: "Ta", AtomicNumber: 73},
	{Name: "Tungsteno", Symbol: "W", AtomicNumber: 74},
	{Name: "Renio", Symbol: "Re", AtomicNumber: 75},
	{Name: "Osmio", Symbol: "Os", AtomicNumber: 76},
	{Name: "Iridio", Symbol: "Ir", AtomicNumber: 77},
	{Name: "Platino", Symbol: "Pt", AtomicNumber: 78},
	{Name: "Oro", Symbol: "Au", AtomicNumber: 79},
	{Name: "Mercurio", Symbol: "Hg", AtomicNumber: 80},
	{Name: "Tallio", Symbol: "Tl", AtomicNumber: 81},
	{Name: "Piombo", Symbol: "Pb", AtomicNumber: 82},
	{Name: "Bismuto", Symbol: "Bi", AtomicNumber: 83},
	{Name: "Polonio", Symbol: "Po", AtomicNumber: 84},
	{Name: "Astato", Symbol: "At", AtomicNumber: 85},
	{Name: "Radon", Symbol: "Rn", AtomicNumber: 86},
	{Name: "Francio", Symbol: "Fr", AtomicNumber: 87},
	{Name: "Radio", Symbol: "Ra", AtomicNumber: 88},
	{Name: "Attinio", Symbol: "Ac", AtomicNumber: 89},
	{Name: "Torio", Symbol: "Th", AtomicNumber: 90},
	{Name: "Protoattinio", Symbol: "Pa", AtomicNumber: 91},
	{Name: "Uranio", Symbol: "U", AtomicNumber: 92},
	{Name: "Nettunio", Symbol: "Np", AtomicNumber: 93},
	{Name: "Plutonio", Symbol: "Pu", AtomicNumber: 94},
}
