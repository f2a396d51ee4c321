package names

// groups lists spellings of the same given name across German, Polish,
// Latin, English, Dutch, Czech, Russian, French, Spanish, Italian and
// Scandinavian records. A normalized spelling appears in exactly one group.
var groups = [][]string{
	{"Abraham", "Abramo", "Abrahám"},
	{"Adalbert", "Wojciech", "Albertus", "Albert", "Alberto", "Albrecht"},
	{"Alois", "Aloys", "Aloysius", "Alouise", "Aloisio"},
	{"Adam", "Adamo", "Ádám"},
	{"Adrian", "Adriano", "Adriaan"},
	{"Agathe", "Agatha", "Agata"},
	{"Agnes", "Agnieszka", "Ines", "Anežka", "Agnese"},
	{"Alexander", "Aleksander", "Olek", "Aleksandr", "Alessandro", "Alejandro", "Alexandre"},
	{"Alice", "Alicja", "Adelheid"},
	{"Amalie", "Amalia", "Amelia", "Mali", "Amálie"},
	{"Andreas", "Andrzej", "Andrew", "Andrija", "Andre", "Ondřej", "Andrea", "Andrés", "Anders"},
	{"Angela", "Angelika", "Angelina", "Angèle"},
	{"Anna", "Anne", "Hanna", "Hannah", "Ania", "Ann", "Ana", "Anneke", "Annie", "Annette"},
	{"Anton", "Antoni", "Antonius", "Anthony", "Antonín", "Antonio", "Antoine", "Tony"},
	{"Apolonia", "Polly", "Pauline", "Paulina", "Apollonia"},
	{"Arnold", "Arno", "Arnoald", "Arnault"},
	{"August", "Augustus", "Augustin", "Augusto", "Agostino"},
	{"Barbara", "Basia", "Barbora", "Bärbel", "Babette", "Bärbli", "Wawerl"},
	{"Bartholomew", "Bartłomiej", "Bartosz", "Bartholomaeus", "Bartholomäus", "Bartolomeo", "Bartolomé", "Barthel"},
	{"Beate", "Beata", "Beatrice", "Beatrix"},
	{"Benedict", "Benedikt", "Benedykt", "Benedictus", "Benedetto", "Benito"},
	{"Bernhard", "Bernard", "Bernardo", "Bernat"},
	{"Bridget", "Birgitta", "Berit", "Brita", "Brigitte", "Gitta", "Brida", "Birte"},
	{"Bruno", "Brunone"},
	{"Kasmier", "Casmier", "Casimir", "Kazimierz", "Kazimír", "Casimer"},
	{"Caspar", "Kaspar", "Kacper", "Caspian", "Gaspare", "Gaspar"},
	{"Karl", "Carl", "Carolus", "Charles", "Karol", "Karel", "Carlo", "Carlos", "Kalle"},
	{
		"Charlotte", "Charlene", "Charline", "Charlotta", "Carlotta", "Carlota", "Šarlota", "Sharlotta",
		"Lotte", "Lotti", "Lottie", "Caroline", "Carolina", "Carola", "Karoline", "Karolina", "Carolin",
		"Karola", "Lina", "Line",
	},
	{"Christian", "Chrystyan", "Chystian", "Kristian", "Christianus", "Krystian", "Cristiano", "Carsten", "Karsten", "Chrétien"},
	{
		"Christina", "Kristina", "Chrystyna", "Krystyna", "Kristine", "Christine", "Cristina", "Kirsten",
		"Kiersten", "Kerstin", "Stina", "Christiana", "Christianna",
	},
	{"Christoph", "Christopherus", "Christophorus", "Krzysztof", "Christopher", "Cristoforo", "Cristóbal"},
	{"Claire", "Clara", "Klara", "Chiara"},
	{"Clement", "Klemens", "Clemens", "Clemente"},
	{"David", "Davide"},
	{"Denis", "Dennis", "Dionysius", "Dionigi"},
	{"Dominic", "Dominik", "Dominicus", "Domenico", "Domingo"},
	{"Dolores", "Delores", "Deloris", "Dolors", "Addolorata", "Dolorosa", "Lola", "Lolita", "Loli", "Dores"},
	{"Dorothea", "Dorothy", "Dorota", "Dora", "Dorotea", "Dörthe"},
	{"Eduard", "Eduardus", "Edward", "Edvard", "Edoardo", "Eduardo"},
	{
		"Elsbeth", "Elisabeth", "Elizabeth", "Elżbieta", "Alžběta", "Alyzbeta", "Yelizaveta", "Elisabetta",
		"Elisa", "Elise", "Lisa", "Liesbeth", "Liesel", "Betty", "Bessie", "Beth", "Sisi", "Sissi", "Lisi",
		"Else", "Lisbeth", "Betka", "Elize",
	},
	{"Emil", "Emilius", "Emilio", "Émile"},
	{"Emmanuel", "Emanuel", "Emanuele", "Manuel"},
	{"Erik", "Eirik", "Erich", "Eric"},
	{"Ernst", "Ernest", "Ernesto"},
	{"Eugen", "Eugene", "Eugenio", "Eugène"},
	{
		"Fabian", "Fabianus", "Fabien", "Fabiano", "Fabián", "Fabijn", "Fabijan", "Fabio", "Fabiana",
		"Fabienne", "Fabiane", "Fabiola",
	},
	{"Ferdinand", "Fernando", "Hernando"},
	{"Franciszek", "Franz", "Francis", "Franciscus", "Frank", "František", "Francesco", "Francisco", "François"},
	{"Friedrich", "Fryderyk", "Frederic", "Frederick", "Fredericus", "Fritz", "Bedřich", "Federico"},
	{"Gabriel", "Gabriele", "Gábor"},
	{"Genevieve", "Genowefa", "Genoveva", "Genovana", "Ginette"},
	{"Georg", "George", "Georgius", "Jörg", "Juergen", "Jürgen", "Jerzy", "Yury", "Jiří", "Giorgio", "Jorge", "Jørgen", "Jörgen"},
	{"Gerald", "Gerhard", "Gerard", "Gherardo", "Gérard"},
	{"Gertrud", "Gertrude", "Gertraude"},
	{"Gilbert", "Gilberto"},
	{"Gottfried", "Godfrey", "Geoffrey", "Goffredo"},
	{"Gottlieb", "Bogumił", "Bogusław", "Theophilus", "Amadeus", "Amedeo"},
	{"Gregory", "Gregor", "Grzegorz", "Gregorius", "Gregorio"},
	{"Hans", "Hannes"},
	{"Hedwig", "Jadwiga", "Hadwig"},
	{"Helena", "Helen", "Helene", "Elena", "Yelena"},
	{"Heinrich", "Henry", "Henryk", "Henricus", "Henri", "Enrico", "Enrique", "Indřich", "Jindrich", "Heinz", "Heini"},
	{"Herbert", "Heribert"},
	{"Hermann", "Herman", "Ermanno"},
	{"Hubert", "Hubertus", "Uberto"},
	{"Hugo", "Hugh", "Ugo"},
	{"Ignatius", "Ignacy", "Ignatz", "Ignaz", "Ignazio", "Ignacio"},
	{"Isaac", "Isaak", "Isacco"},
	{"Jacob", "Jakob", "Jacobus", "James", "Kuba", "Iacobus", "Jakub", "Giacomo", "Diego", "Jaime", "Jacques", "Ib"},
	{"Joachim", "Gioacchino", "Joaquin"},
	{"Jan", "Johann", "Johannes", "John", "Ivan", "Janek", "Janko", "Joannes", "Jean", "Giovanni", "Juan", "Ioannes", "Iwan", "Jens", "Johan"},
	{"Joseph", "Josef", "Józef", "Joe", "Giuseppe", "José", "Sepp", "Pepi", "Beppo"},
	{"Judith", "Jutta", "Giuditta"},
	{"Julian", "Julius", "Giuliano", "Giulio", "Jules"},
	{"Justyna", "Justine", "Justina", "Giustina"},
	{
		"Trin", "Katrin", "Cathrin", "Katharina", "Catharina", "Katarzyna", "Katarina", "Kateřina",
		"Katherine", "Catherine", "Kate", "Katie", "Kasia", "Ekaterina", "Katherina", "Caterina",
		"Catherina", "Kati", "Käthi", "Kaia", "Kaja", "Cathryn", "Kathleen",
	},
	{"Conrad", "Konrad", "Cornelius", "Corrado", "Koni", "Kurt"},
	{"Władysław", "Ladislaus", "Vladislav", "Ladislao"},
	{"Lorenz", "Lawrence", "Laurentius", "Laurent", "Lorenzo", "Wawrzyniec", "Waurzyniec"},
	{"Leo", "Leon", "Leonard", "Leonardo"},
	{"Leopold", "Luitpold"},
	{"Ludwig", "Ludovicus", "Ludwik", "Louis", "Ludvík", "Luigi", "Luis", "Lutz"},
	{"Louisa", "Louise", "Ludovica", "Ludwika", "Luise", "Ludovika", "Luisa", "Eloise", "Lovisa"},
	{"Lucia", "Lucy", "Lucie", "Luzia"},
	{"Luke", "Lukas", "Lucas", "Łukasz", "Luca"},
	{"Magdalena", "Magdalene", "Madeline", "Madeleine"},
	{
		"Margret", "Margareth", "Margarethe", "Margaretha", "Margareta", "Małgorzata", "Markéta", "Margaret",
		"Maggie", "Greta", "Gretchen", "Margot", "Margherita", "Margarita", "Margrethe", "Margit", "Mette",
		"Marit", "Marguerite",
	},
	{"Mark", "Markus", "Marcus", "Marek", "Marco", "Marcos"},
	{"Martha", "Marthe", "Marta"},
	{"Martin", "Marcin", "Martinus", "Martinius", "Martino", "Merten"},
	{"Maria", "Mary", "Marie", "Maryja", "Mariam", "Marija", "Mariya", "Mitzi", "Ria", "Mari"},
	{"Maciej", "Matthias", "Mathias", "Matyas", "Maciek", "Mateusz", "Matthew", "Matthäus", "Matteo", "Mateo", "Matěj", "Mats"},
	{"Moritz", "Maurice", "Mauritius", "Maurizio", "Mauricio"},
	{"Maximilian", "Max", "Massimiliano"},
	{"Michael", "Michał", "Michel", "Mihail", "Mikael", "Michaelis", "Mikhail", "Michele", "Miguel", "Mikkel"},
	{"Nicholas", "Nikolaus", "Niklaus", "Nicolaus", "Mikołaj", "Nick", "Nico", "Niccolò", "Nicolò", "Nicolás", "Niels", "Nils"},
	{"Olaf", "Olav", "Olof", "Oluf"},
	{"Oscar", "Oskar", "Oscarre"},
	{"Ottilie", "Otylja", "Ottilia", "Otylia"},
	{"Otto", "Oton", "Oddone"},
	{"Patrick", "Patriz", "Patrizio", "Patricio"},
	{"Paul", "Paulus", "Paweł", "Pavel", "Paolo", "Pablo"},
	{"Peter", "Piotr", "Petrus", "Piers", "Pyotr", "Pietro", "Pedro", "Pierre", "Per", "Peder", "Petter"},
	{"Philip", "Philipp", "Filip", "Philippus", "Filippo", "Felipe"},
	{"Raymond", "Raimund", "Raimondo", "Ramón"},
	{"Richard", "Riccardo", "Ricardo"},
	{"Robert", "Roberto", "Rupert", "Ruprecht"},
	{"Roger", "Rüdiger", "Ruggero", "Rogelio"},
	{"Roland", "Orlando"},
	{"Rosemary", "Rosemarie"},
	{"Rudolf", "Rudolph", "Rodolfo"},
	{"Rosina", "Rosine", "Rozyna", "Rosa", "Rose", "Rosalie", "Rosalia", "Róża"},
	{"Samuel", "Samuele"},
	{"Sebastian", "Sebastiano"},
	{"Siegmund", "Zygmunt", "Sigismund", "Sigismundus", "Zmago"},
	{"Simon", "Szymon", "Simeon", "Simone"},
	{"Salome", "Sally", "Salomea", "Sarah", "Sara", "Salli", "Sallie"},
	{"Sofia", "Zofia", "Sophie", "Sophia", "Žofie", "Sofiya", "Siri"},
	{"Stephan", "Stefan", "Stephanus", "Szczepan", "Stephen", "Štěpán", "Stefano", "Esteban"},
	{"Thaddeus", "Thaddäus", "Tadeusz", "Taddeo"},
	{"Theodor", "Theodore", "Teodoro"},
	{"Theresa", "Therese", "Teresa", "Thérèse"},
	{"Thomas", "Tomasz", "Tom", "Tomáš", "Tommaso"},
	{"Thor", "Tor", "Tore"},
	{"Timothy", "Timotheus", "Timoteo"},
	{"Urban", "Urbanus", "Urbano"},
	{"Ursula", "Orsola"},
	{"Valentine", "Valentin", "Walenty", "Valentinus", "Valentino"},
	{"Victor", "Viktor", "Wiktor", "Vittorio"},
	{"Vincent", "Vinzenz", "Wincenty", "Vincentius", "Vincenc", "Vincenzo", "Vicente"},
	{"Walter", "Walther", "Gualtiero"},
	{"Wenzel", "Wacław", "Wenceslaus", "Václav"},
	{"Wilhelm", "William", "Willem", "Gulielmus", "Guillaume", "Guglielmo", "Guillermo"},
	{"Xaver", "Xavier", "Saverio", "Javier"},
	{"Marianna", "Marianne"},
}

// knownGenders seeds gender inference. Names missing here inherit the gender
// of the first listed member of their group.
var knownGenders = map[string]string{
	"Abraham": "M", "Adam": "M", "Adrian": "M", "Alexander": "M", "Alois": "M",
	"Andreas": "M", "Anton": "M", "Arnold": "M", "August": "M", "Bartholomäus": "M",
	"Benedikt": "M", "Bernhard": "M", "Bruno": "M", "Caspar": "M", "Christian": "M",
	"Christoph": "M", "Clemens": "M", "David": "M", "Dennis": "M", "Dominik": "M",
	"Eduard": "M", "Emil": "M", "Emanuel": "M", "Erich": "M", "Ernst": "M",
	"Eugen": "M", "Fabian": "M", "Ferdinand": "M", "Franz": "M", "Friedrich": "M",
	"Gabriel": "M", "Georg": "M", "Gerhard": "M", "Gottfried": "M", "Gottlieb": "M",
	"Gregor": "M", "Hans": "M", "Heinrich": "M", "Herbert": "M", "Hermann": "M",
	"Hubert": "M", "Hugo": "M", "Ignaz": "M", "Isaac": "M", "Jakob": "M",
	"Joachim": "M", "Johann": "M", "Johannes": "M", "Josef": "M", "Julian": "M",
	"Julius": "M", "Karl": "M", "Konrad": "M", "Ladislaus": "M", "Lorenz": "M",
	"Leo": "M", "Leopold": "M", "Ludwig": "M", "Lukas": "M", "Markus": "M",
	"Martin": "M", "Matthias": "M", "Michael": "M", "Moritz": "M", "Maximilian": "M",
	"Nikolaus": "M", "Olaf": "M", "Oskar": "M", "Otto": "M", "Patrick": "M",
	"Paul": "M", "Peter": "M", "Philipp": "M", "Raimund": "M", "Richard": "M",
	"Robert": "M", "Roger": "M", "Roland": "M", "Rudolf": "M", "Samuel": "M",
	"Sebastian": "M", "Siegmund": "M", "Simon": "M", "Stefan": "M", "Stephan": "M",
	"Thaddäus": "M", "Theodor": "M", "Thomas": "M", "Thor": "M", "Timothy": "M",
	"Urban": "M", "Valentin": "M", "Viktor": "M", "Vinzenz": "M", "Walter": "M",
	"Wenzel": "M", "Wilhelm": "M", "Xaver": "M",

	"Agathe": "F", "Agnes": "F", "Alice": "F", "Amalie": "F", "Angela": "F",
	"Anna": "F", "Anne": "F", "Apolonia": "F", "Barbara": "F", "Beate": "F", "Birgitta": "F",
	"Brigitte": "F", "Charlotte": "F", "Christina": "F", "Christine": "F",
	"Clara": "F", "Dolores": "F", "Dorothea": "F", "Elisabeth": "F", "Genevieve": "F",
	"Gertrud": "F", "Gisela": "F", "Giesela": "F", "Hedwig": "F", "Helena": "F", "Hanna": "F", "Hannah": "F",
	"Judith": "F", "Justine": "F", "Katharina": "F", "Karolina": "F", "Karoline": "F",
	"Louise": "F", "Lucia": "F", "Magdalena": "F", "Margarethe": "F", "Margaretha": "F",
	"Martha": "F", "Maria": "F", "Marianna": "F", "Ottilie": "F", "Regina": "F",
	"Rosemary": "F", "Rosina": "F", "Salome": "F", "Sophia": "F", "Sophie": "F",
	"Theresa": "F", "Therese": "F", "Ursula": "F", "Zofia": "F",
}
