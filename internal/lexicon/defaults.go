package lexicon

// DefaultTables returns a fresh copy of the built-in tables
func DefaultTables() Tables {
	return Tables{
		AIIndicators: []string{
			`in conclusion`,
			`it is important to note`,
			`furthermore`,
			`moreover`,
			`additionally`,
			`it is worth noting`,
			`it should be noted`,
			`in summary`,
			`to summarize`,
			`in essence`,
			`it is evident that`,
			`it can be observed that`,
			`as a matter of fact`,
			`with regard to`,
			`with respect to`,
			`in order to`,
			`due to the fact that`,
			`meticulously`,
			`profound`,
			`facilitate`,
			`utilize`,
			`demonstrate`,
			`leverage`,
			`optimize`,
		},
		HumanIndicators: []string{
			`i think`,
			`i believe`,
			`in my opinion`,
			`personally`,
			`i've noticed`,
			`from my experience`,
			`i find that`,
			`i've seen`,
			`i noticed`,
			`i remember`,
			`i feel`,
			`\bi'm\b`,
			`\bi'll\b`,
			`\bi'd\b`,
			`\bdon't\b`,
			`\bcan't\b`,
			`\bwon't\b`,
			`\bthat's\b`,
			`\bit's\b`,
			`\bwhat's\b`,
		},
		CasualPatterns: []string{
			`\b(?:really|pretty|basically|actually|honestly|stuff|gonna|wanna|yeah|okay|ok|super|totally|anyway)\b`,
			`\b(?:kind of|sort of|you know|i mean|a lot|lots of)\b`,
		},
		Pronouns:     `\b(?:I|me|my|myself|we|us|our|ourselves|you|your|yours)\b`,
		Contractions: `\b\w+['’](?:t|m|re|ve|ll|d|s)\b`,

		Replacements: map[string][]string{
			// Transition phrases
			"furthermore":   {"also", "plus", "and", "what's more"},
			"moreover":      {"also", "what's more", "on top of that", "plus"},
			"additionally":  {"also", "plus", "and", "on top of that"},
			"in conclusion": {"so", "to wrap up", "all in all", "basically"},
			"it is important to note": {
				"it's worth noting", "keep in mind", "remember", "note that",
			},
			"it should be noted": {"note that", "keep in mind", "remember"},
			"in summary":         {"so", "to sum up", "basically", "in short"},
			"to summarize":       {"so", "in short", "basically"},
			"in essence":         {"basically", "at its core", "really", "essentially"},
			"therefore":          {"so", "that's why", "which means", "which is why"},
			"thus":               {"so", "this means", "that's why"},
			"hence":              {"so", "that's why"},
			"consequently":       {"so", "as a result", "that's why"},
			"nevertheless":       {"but", "still", "though"},
			"nonetheless":        {"but", "still", "though"},
			"however":            {"but", "though", "still"},

			// Formal academic words
			"meticulously": {"carefully", "thoroughly", "really carefully"},
			"profound":     {"deep", "real", "significant"},
			"facilitate":   {"help", "make easier", "enable"},
			"facilitates":  {"helps", "makes easier", "enables"},
			"facilitated":  {"helped", "made easier", "enabled"},
			"demonstrate":  {"show", "prove", "reveal"},
			"demonstrates": {"shows", "proves", "reveals"},
			"demonstrated": {"showed", "proved", "revealed"},
			"utilize":      {"use", "make use of"},
			"utilizes":     {"uses", "makes use of"},
			"utilized":     {"used", "made use of"},
			"implement":    {"do", "carry out", "put in place"},
			"implements":   {"does", "carries out"},
			"implemented":  {"did", "carried out"},
			"acquire":      {"get", "gain", "pick up"},
			"acquires":     {"gets", "gains"},
			"acquired":     {"got", "gained"},
			"analyze":      {"look at", "study", "examine"},
			"analyzes":     {"looks at", "studies", "examines"},
			"analyzed":     {"looked at", "studied", "examined"},
			"examine":      {"look at", "check out", "study"},
			"examines":     {"looks at", "checks out"},
			"examined":     {"looked at", "checked out"},
			"investigate":  {"look into", "check out", "explore"},
			"investigates": {"looks into", "checks out"},
			"investigated": {"looked into", "checked out"},
			"optimize":     {"improve", "make better", "enhance"},
			"optimizes":    {"improves", "makes better"},
			"optimized":    {"improved", "made better"},
			"leverage":     {"use", "take advantage of"},
			"leverages":    {"uses", "takes advantage of"},
			"leveraged":    {"used", "took advantage of"},

			// Complex phrases
			"in order to":               {"to", "so I can"},
			"with regard to":            {"about", "regarding", "when it comes to"},
			"with respect to":           {"about", "regarding"},
			"in the context of":         {"when it comes to", "in"},
			"it is evident that":        {"clearly", "obviously", "it's clear that"},
			"it can be observed that":   {"you can see", "it's clear", "obviously"},
			"it is worth mentioning":    {"worth noting", "worth saying"},
			"as a matter of fact":       {"actually", "in fact"},
			"in the event that":         {"if", "when"},
			"prior to":                  {"before"},
			"subsequent to":             {"after"},
			"due to the fact that":      {"because", "since"},
			"in spite of the fact that": {"even though", "despite"},

			// Personal statement phrases
			"fascination with":   {"love for", "interest in", "passion for"},
			"fueled my ambition": {"drove me", "motivated me", "pushed me"},
			"master the intersection": {
				"work at the intersection", "combine", "bring together",
			},
			"specialize in":      {"focus on", "work in", "concentrate on"},
			"pursue a career as": {"become", "work as", "aim to be"},
		},

		Synonyms: map[string][]string{
			"significantly":  {"a lot", "quite a bit"},
			"substantially":  {"a lot", "quite a bit"},
			"extremely":      {"really", "super"},
			"exceptionally":  {"really", "unusually"},
			"numerous":       {"lots of", "many", "plenty of"},
			"approximately":  {"about", "around", "roughly"},
			"sufficient":     {"enough"},
			"additional":     {"extra", "more"},
			"individuals":    {"people", "folks"},
			"commence":       {"start", "begin"},
			"terminate":      {"end", "stop"},
			"endeavor":       {"try", "effort"},
			"assist":         {"help"},
			"obtain":         {"get"},
			"purchase":       {"buy"},
			"crucial":        {"key", "really important"},
			"essential":      {"key", "important"},
			"various":        {"different", "all kinds of"},
			"particularly":   {"especially"},
			"subsequently":   {"later", "then"},
			"predominantly":  {"mostly"},
			"frequently":     {"often"},
			"revolutionized": {"changed", "shaken up", "transformed"},
		},

		AdditionalSynonyms: map[string][]string{
			"very":      {"really"},
			"many":      {"a lot of"},
			"large":     {"big"},
			"difficult": {"hard"},
			"important": {"key", "big"},
			"perhaps":   {"maybe"},
			"children":  {"kids"},
			"quickly":   {"fast"},
		},

		ContractionRules: []RuleSpec{
			{From: `it is`, To: "it's"},
			{From: `I am`, To: "I'm", CaseSensitive: true},
			{From: `I have`, To: "I've", CaseSensitive: true},
			{From: `I will`, To: "I'll", CaseSensitive: true},
			{From: `I would`, To: "I'd", CaseSensitive: true},
			{From: `you are`, To: "you're"},
			{From: `we are`, To: "we're"},
			{From: `they are`, To: "they're"},
			{From: `it has`, To: "it's"},
			{From: `that is`, To: "that's"},
			{From: `there is`, To: "there's"},
			{From: `here is`, To: "here's"},
			{From: `what is`, To: "what's"},
			{From: `who is`, To: "who's"},
			{From: `where is`, To: "where's"},
			{From: `how is`, To: "how's"},
		},

		NegationRules: []RuleSpec{
			{From: `do not`, To: "don't"},
			{From: `does not`, To: "doesn't"},
			{From: `did not`, To: "didn't"},
			{From: `will not`, To: "won't"},
			{From: `would not`, To: "wouldn't"},
			{From: `cannot`, To: "can't"},
			{From: `could not`, To: "couldn't"},
			{From: `should not`, To: "shouldn't"},
			{From: `must not`, To: "mustn't"},
			{From: `has not`, To: "hasn't"},
			{From: `have not`, To: "haven't"},
			{From: `had not`, To: "hadn't"},
			{From: `is not`, To: "isn't"},
			{From: `are not`, To: "aren't"},
			{From: `was not`, To: "wasn't"},
			{From: `were not`, To: "weren't"},
		},

		CasualOpeners: []string{
			"Honestly,",
			"Actually,",
			"Basically,",
			"Look,",
			"Well,",
			"The thing is,",
			"To be fair,",
			"Truth is,",
		},

		PersonalityPhrases: []string{
			"I think",
			"In my experience",
			"From what I've seen",
			"Personally",
			"I've noticed",
			"For me",
			"I found that",
			"What I learned is",
		},

		PassiveVerbs: map[string]string{
			"analyzed":     "I analyzed",
			"examined":     "I examined",
			"investigated": "I investigated",
			"implemented":  "I implemented",
			"utilized":     "I used",
			"demonstrated": "I showed",
			"developed":    "I developed",
			"designed":     "I designed",
			"conducted":    "I conducted",
			"evaluated":    "I evaluated",
			"tested":       "I tested",
			"measured":     "I measured",
		},

		DomainPatterns: []string{
			`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Algorithm|Method|System|Framework|Library|API|SDK|Protocol|Standard|Model|Architecture|Pattern|Design|Principle)\b`,
			`\b(?:HTTP|HTTPS|API|REST|JSON|XML|SQL|NoSQL|AI|ML|DL|NLP|CV|GPU|CPU|RAM|SSD|HDD|IDE|CLI|GUI|UI|UX|CSS|HTML|JS|TS|PHP|Python|Java|C\+\+|Go|Rust|Swift|Kotlin)\b`,
			`\b\d+\.\d+(?:\.\d+)?\s*(?:GHz|MHz|GB|MB|TB|KB|ms|s|min|hr)\b`,
			`\b(?:Dual-Pivot|Quick|Merge|Heap|Bubble|Insertion|Selection)\s+(?:Sort|Algorithm)\b`,
			`\b(?:DevSecOps|DevOps|Agile|Scrum|Kanban|CI/CD)\b`,
			`\b(?:Master|Bachelor|Doctorate|PhD|MSc|BSc|BS|MS|MA|BA)\s+(?:of|in)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`,
			`\b(?:University|College|Institute|School)\s+of\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`,
		},
	}
}
